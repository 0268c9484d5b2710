package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeGateway_Charge(t *testing.T) {
	gw := FakeGateway{}

	result, err := gw.Charge(context.Background(), decimal.NewFromInt(100), "TOKEN_ABC")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "TXN_TOKEN_ABC", result.TransactionID)
	assert.Empty(t, result.Err)
}

func TestFakeGateway_Deterministic(t *testing.T) {
	gw := FakeGateway{}

	a, err := gw.Charge(context.Background(), decimal.NewFromInt(1), "SAME")
	require.NoError(t, err)
	b, err := gw.Charge(context.Background(), decimal.NewFromInt(999), "SAME")
	require.NoError(t, err)

	assert.Equal(t, a.TransactionID, b.TransactionID, "transaction id depends only on the token")
}
