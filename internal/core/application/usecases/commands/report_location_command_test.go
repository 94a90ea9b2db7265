package commands_test

import (
	"testing"

	"driverhub/internal/core/application/usecases/commands"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportLocationCommand_Success(t *testing.T) {
	driverID := kernel.NewUUID()
	location, err := kernel.NewLocation(51.5074, -0.1278)
	require.NoError(t, err)

	cmd, err := commands.NewReportLocationCommand(driverID, location)

	require.NoError(t, err)
	assert.Equal(t, driverID, cmd.DriverID())
	equal, err := location.IsEqual(cmd.Location())
	require.NoError(t, err)
	assert.True(t, equal)
	assert.NoError(t, cmd.Validate())
}

func TestNewReportLocationCommand_EmptyDriverID(t *testing.T) {
	location, err := kernel.NewLocation(51.5074, -0.1278)
	require.NoError(t, err)

	_, err = commands.NewReportLocationCommand(kernel.UUID{}, location)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewReportLocationCommand_InvalidLocation(t *testing.T) {
	_, err := commands.NewReportLocationCommand(kernel.NewUUID(), kernel.Location{})

	require.Error(t, err)
}

func TestReportLocationCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ReportLocationCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrReportLocationCommandIsNotConstructed)
}
