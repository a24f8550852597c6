package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
)

//go:generate mockgen -source=collaborators.go -destination=mocks/mock_collaborators.go -package=mocks

// External modules of the platform (catalog, sales, orders, identity) are
// consumed only through these boundaries. The core reads their rows and,
// inside its own transactions, flips payment states on sales and orders.

// ClientDirectory looks up customer records. A nil tx reads from the pool; a
// non-nil tx joins the caller's transaction snapshot.
type ClientDirectory interface {
	GetClient(ctx context.Context, tx Transaction, id string) (*domain.Client, error)
}

// SaleLedger reads completed sales and updates their payment state. Reads
// take an optional tx with the same nil-or-snapshot convention.
type SaleLedger interface {
	GetSale(ctx context.Context, tx Transaction, id string) (*domain.Sale, error)
	// SumPaidSince totals completed sales with timestamp >= since.
	SumPaidSince(ctx context.Context, tx Transaction, since time.Time) (decimal.Decimal, error)
	SetPaymentStatus(ctx context.Context, tx Transaction, id, status string) error
}

// OrderLedger reads delivery orders and updates their payment state.
type OrderLedger interface {
	GetOrder(ctx context.Context, tx Transaction, id string) (*domain.Order, error)
	SetPaymentStatus(ctx context.Context, tx Transaction, id, status string) error
}

// ProductCatalog looks up catalog items referenced by vouchers.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
