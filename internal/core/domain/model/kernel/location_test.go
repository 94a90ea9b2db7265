package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{
			name:      "valid location",
			latitude:  51.5074,
			longitude: -0.1278,
			wantErr:   false,
		},
		{
			name:      "valid location at min bounds",
			latitude:  kernel.LocationMinLatitude,
			longitude: kernel.LocationMinLongitude,
			wantErr:   false,
		},
		{
			name:      "valid location at max bounds",
			latitude:  kernel.LocationMaxLatitude,
			longitude: kernel.LocationMaxLongitude,
			wantErr:   false,
		},
		{
			name:      "valid location at equator and prime meridian",
			latitude:  0,
			longitude: 0,
			wantErr:   false,
		},
		{
			name:      "invalid latitude too small",
			latitude:  -90.5,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "invalid latitude too large",
			latitude:  90.5,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "invalid longitude too small",
			latitude:  0,
			longitude: -180.5,
			wantErr:   true,
		},
		{
			name:      "invalid longitude too large",
			latitude:  0,
			longitude: 180.5,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.latitude, loc.Latitude(), 0)
			assert.InDelta(t, tt.longitude, loc.Longitude(), 0)
		})
	}
}

func TestLocation_Validate(t *testing.T) {
	t.Run("valid location", func(t *testing.T) {
		loc := mustNewLocation(t, 40.7128, -74.0060)
		require.NoError(t, loc.Validate())
	})

	t.Run("zero value location", func(t *testing.T) {
		var loc kernel.Location
		err := loc.Validate()
		require.Error(t, err)
		assert.Equal(t, kernel.ErrLocationIsNotConstructed, err)
	})
}

func TestLocation_String(t *testing.T) {
	loc := mustNewLocation(t, 51.5074, -0.1278)
	assert.Equal(t, "Location(51.507400,-0.127800)", loc.String())
}

func TestLocation_IsEqual(t *testing.T) {
	t.Run("equal locations", func(t *testing.T) {
		loc1 := mustNewLocation(t, 51.5074, -0.1278)
		loc2 := mustNewLocation(t, 51.5074, -0.1278)

		equal, err := loc1.IsEqual(loc2)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different locations", func(t *testing.T) {
		loc1 := mustNewLocation(t, 51.5074, -0.1278)
		loc2 := mustNewLocation(t, 48.8566, 2.3522)

		equal, err := loc1.IsEqual(loc2)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("comparison with zero value fails", func(t *testing.T) {
		loc := mustNewLocation(t, 51.5074, -0.1278)
		var zero kernel.Location

		_, err := loc.IsEqual(zero)
		require.Error(t, err)
	})
}

func mustNewLocation(t *testing.T, latitude, longitude float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(latitude, longitude)
	require.NoError(t, err)
	return loc
}
