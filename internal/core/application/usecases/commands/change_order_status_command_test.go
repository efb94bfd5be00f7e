package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	t.Run("accepts an id and a known status", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewChangeOrderStatusCommand(id, order.Completed)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, order.Completed, cmd.Status())
	})

	t.Run("rejects a zero id", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.Cancelled)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Unknown)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.ChangeOrderStatusCommand{}.Validate(),
			commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
