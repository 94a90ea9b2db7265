package queries_test

import (
	"testing"

	"driverhub/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAvailableOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetAvailableOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetAvailableOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAvailableOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAvailableOrdersQueryIsNotConstructed)
}
