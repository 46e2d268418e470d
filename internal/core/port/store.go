package port

import (
	"context"
	"flatbot/internal/core/domain"
)

type BillStore interface {
	// CreateBill persists a bill and its shares, returning the row id.
	CreateBill(ctx context.Context, bill *domain.Bill) (int64, error)
	// GetBillByToken loads a bill by its correlation token.
	GetBillByToken(ctx context.Context, token string) (*domain.Bill, error)
	// MarkPaid flags one flatmate's share of a bill as settled.
	MarkPaid(ctx context.Context, token string, name string) error
}
