package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// не-UUID отсекается до обращения к базе: пул не нужен
func TestOrderRepository_GetByID_NotUUID(t *testing.T) {
	repo := NewOrderRepository(nil)

	for _, id := range []string{"", "42", "not-a-uuid", "00000000-0000-0000-0000-00000000000g"} {
		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err, id)
		assert.Nil(t, got, id)
	}
}
