package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalog and workflow entities owned by other modules of the platform. The
// core reads them and, inside its own transactions, flips payment states on
// sales and orders; it never creates or deletes them.

// Client is a customer record from the client directory.
type Client struct {
	ID             string
	Name           string
	District       string
	CreditEligible bool
}

// Sale is a completed point-of-sale transaction from the sales module.
type Sale struct {
	ID            string
	ClientID      string
	Total         decimal.Decimal
	Status        string
	PaymentStatus string
	SoldAt        time.Time
}

// Order is a delivery order from the orders module.
type Order struct {
	ID            string
	ClientID      string
	Total         decimal.Decimal
	Status        string
	PaymentStatus string
	CreatedAt     time.Time
}

// Product is a catalog item referenced by vouchers.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Active    bool
}
