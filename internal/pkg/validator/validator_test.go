package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/internal/domain"
)

func TestCheck(t *testing.T) {
	ok := domain.Venue{Name: "OdontoVida", Address: "Av. Paulista, 1500", MaxClientsPerSlot: 2, BarbersCount: 1}
	assert.NoError(t, Check(&ok))

	bad := domain.Venue{Address: "Rua Augusta", MaxClientsPerSlot: 0, BarbersCount: 1}
	err := Check(&bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["Name"])
	assert.Equal(t, "gte", verr.Fields["MaxClientsPerSlot"])
}
