// Package payment contains payment gateway implementations.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopcore/checkout/internal/domain/checkout"
)

var _ checkout.Gateway = FakeGateway{}

// FakeGateway approves every charge and manufactures a deterministic
// transaction ID from the payment token. Useful for test harnesses and the
// demo driver only; it is in no way representative of real payment
// behaviour.
type FakeGateway struct{}

// Charge always succeeds with transaction ID "TXN_<token>".
func (FakeGateway) Charge(_ context.Context, _ decimal.Decimal, token string) (checkout.ChargeResult, error) {
	return checkout.ChargeResult{
		Success:       true,
		TransactionID: "TXN_" + token,
	}, nil
}
