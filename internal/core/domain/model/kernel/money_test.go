package kernel_test

import (
	"encoding/json"
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should round to two places", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.False(t, m.IsPositive())
		assert.Equal(t, "0.00", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "price")
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse decimal literals", func(t *testing.T) {
		m, err := kernel.MoneyFromString("999.99")

		require.NoError(t, err)
		assert.True(t, m.IsPositive())
		assert.True(t, m.IsEqual(kernel.MustMoney("999.990")))
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten dollars")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("MustMoney panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustMoney("-3") })
	})
}

func TestMoney_Times(t *testing.T) {
	testCases := []struct {
		price    string
		quantity int
		expected string
	}{
		{"999.99", 2, "1999.98"},
		{"0.10", 3, "0.30"},
		{"19.99", 1, "19.99"},
		{"1.25", 100, "125.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.price, func(t *testing.T) {
			total := kernel.MustMoney(tc.price).Times(tc.quantity)

			assert.Equal(t, tc.expected, total.String())
			require.NoError(t, total.Validate())
		})
	}
}

func TestMoney_Validate(t *testing.T) {
	var m kernel.Money

	assert.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
}

func TestMoney_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(map[string]any{"price": kernel.MustMoney("999.9")})

	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 999.90}`, string(raw))
	assert.Contains(t, string(raw), "999.90")
}
