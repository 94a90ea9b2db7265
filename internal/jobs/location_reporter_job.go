package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"driverhub/internal/core/application/usecases/commands"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultReportIntervalSeconds is the location reporting period used when no
// interval is configured.
const DefaultReportIntervalSeconds = 30

// ReportHandler narrows the report-location command handler to what the job
// dispatches.
type ReportHandler interface {
	Handle(ctx context.Context, command commands.ReportLocationCommand) error
}

// LocationReporterJob periodically samples the device location and persists
// it for one driver. The session arms it when the driver goes online and
// disarms it when they go offline.
//
// A failed tick, whether the provider refused access or persistence failed,
// is logged and skipped; the loop keeps running and retries on the next
// tick.
type LocationReporterJob struct {
	driverID kernel.UUID
	provider ports.LocationProvider
	handler  ReportHandler
	spec     string
	logger   *slog.Logger

	mu        sync.Mutex
	cron      *cron.Cron
	scheduled bool
	armed     bool
}

// NewLocationReporterJob creates a reporter for one driver with the given
// period in seconds. Periods outside [1, 59] fall back to
// DefaultReportIntervalSeconds.
func NewLocationReporterJob(
	driverID kernel.UUID,
	provider ports.LocationProvider,
	handler ReportHandler,
	intervalSeconds int,
	logger *slog.Logger,
) *LocationReporterJob {
	if intervalSeconds < 1 || intervalSeconds > 59 {
		intervalSeconds = DefaultReportIntervalSeconds
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LocationReporterJob{
		driverID: driverID,
		provider: provider,
		handler:  handler,
		spec:     fmt.Sprintf("@every %ds", intervalSeconds),
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "location_reporter_job", "driver_id", driverID.String()),
	}
}

// Schedule returns the cron descriptor the reporter runs on. The "@every"
// form keeps the period fixed for any interval, where a "*/N" seconds field
// would fire on second-of-minute multiples and drift whenever N does not
// divide 60.
func (j *LocationReporterJob) Schedule() string {
	return j.spec
}

// Arm starts the reporting schedule. Arming an already armed reporter is a
// no-op: one loop per driver, never two.
func (j *LocationReporterJob) Arm() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.armed {
		return nil
	}

	if !j.scheduled {
		_, err := j.cron.AddFunc(j.spec, j.tick)
		if err != nil {
			return err
		}
		j.scheduled = true
	}

	j.cron.Start()
	j.armed = true
	j.logger.Info("location reporter armed", "schedule", j.spec)
	return nil
}

// Disarm stops the reporting schedule before the next tick. A tick already
// in flight may still persist its sample, but no further ticks fire.
// Disarming an unarmed reporter is a no-op.
func (j *LocationReporterJob) Disarm() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.armed {
		return
	}

	j.cron.Stop()
	j.armed = false
	j.logger.Info("location reporter disarmed")
}

func (j *LocationReporterJob) tick() {
	ctx := context.Background()
	if err := j.ReportOnce(ctx); err != nil {
		j.logger.ErrorContext(ctx, "location report failed", "error", err)
	}
}

// ReportOnce samples the device location and persists it. Used by the
// schedule on every tick and exposed for an immediate report.
func (j *LocationReporterJob) ReportOnce(ctx context.Context) error {
	location, err := j.provider.CurrentLocation(ctx)
	if err != nil {
		return err
	}

	command, err := commands.NewReportLocationCommand(j.driverID, location)
	if err != nil {
		return err
	}

	return j.handler.Handle(ctx, command)
}
