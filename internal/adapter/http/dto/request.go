package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// OpenSessionRequest represents a request to open the cash session.
type OpenSessionRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenSessionRequest) ToUseCaseInput(operatorID string) usecase.OpenSessionInput {
	return usecase.OpenSessionInput{
		OpeningAmount: r.OpeningAmount,
		Notes:         r.Notes,
		OperatorID:    operatorID,
	}
}

// RecordMovementRequest represents a request to record a manual cash movement.
type RecordMovementRequest struct {
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Concept   string          `json:"concept"`
	Reference string          `json:"reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordMovementRequest) ToUseCaseInput(operatorID string) usecase.RecordMovementInput {
	return usecase.RecordMovementInput{
		Type:       domain.MovementType(r.Type),
		Amount:     r.Amount,
		Concept:    r.Concept,
		Reference:  r.Reference,
		OperatorID: operatorID,
	}
}

// CloseSessionRequest represents a request to close the open cash session.
type CloseSessionRequest struct {
	ActualAmount decimal.Decimal `json:"actual_amount"`
	Notes        string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CloseSessionRequest) ToUseCaseInput(operatorID string) usecase.CloseSessionInput {
	return usecase.CloseSessionInput{
		ActualAmount: r.ActualAmount,
		Notes:        r.Notes,
		OperatorID:   operatorID,
	}
}

// CreateCreditRequest represents a request to open a credit account.
type CreateCreditRequest struct {
	ClientID string          `json:"client_id"`
	SaleID   *string         `json:"sale_id,omitempty"`
	OrderID  *string         `json:"order_id,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  *time.Time      `json:"due_date,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCreditRequest) ToUseCaseInput(createdBy string) usecase.CreateCreditInput {
	return usecase.CreateCreditInput{
		ClientID:  r.ClientID,
		SaleID:    r.SaleID,
		OrderID:   r.OrderID,
		Amount:    r.Amount,
		DueDate:   r.DueDate,
		Notes:     r.Notes,
		CreatedBy: createdBy,
	}
}

// ApplyPaymentRequest represents a request to apply a payment to a credit account.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ApplyPaymentRequest) ToUseCaseInput(accountID, operatorID string) usecase.ApplyPaymentInput {
	return usecase.ApplyPaymentInput{
		CreditAccountID: accountID,
		Amount:          r.Amount,
		PaymentMethod:   r.PaymentMethod,
		Reference:       r.Reference,
		Notes:           r.Notes,
		OperatorID:      operatorID,
	}
}

// CreateVoucherRequest represents a request to record a deferred delivery charge.
type CreateVoucherRequest struct {
	ClientID  string          `json:"client_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateVoucherRequest) ToUseCaseInput(deliveryPersonID string) usecase.CreateVoucherInput {
	return usecase.CreateVoucherInput{
		ClientID:         r.ClientID,
		ProductID:        r.ProductID,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		Notes:            r.Notes,
		DeliveryPersonID: deliveryPersonID,
	}
}

// TransitionVoucherRequest represents a request to move a voucher forward.
type TransitionVoucherRequest struct {
	Status           string `json:"status"`
	PaymentMethod    string `json:"payment_method,omitempty"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransitionVoucherRequest) ToUseCaseInput(voucherID string, actor domain.Actor) usecase.TransitionInput {
	return usecase.TransitionInput{
		VoucherID:        voucherID,
		Target:           domain.VoucherStatus(r.Status),
		Actor:            actor,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
	}
}

// ForceSetStatusRequest represents an administrative status override.
type ForceSetStatusRequest struct {
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	PaymentMethod    string `json:"payment_method,omitempty"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ForceSetStatusRequest) ToUseCaseInput(voucherID string, actor domain.Actor) usecase.ForceSetStatusInput {
	return usecase.ForceSetStatusInput{
		VoucherID:        voucherID,
		Target:           domain.VoucherStatus(r.Status),
		Reason:           r.Reason,
		Actor:            actor,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
	}
}

// PayAllPendingRequest represents a batch settlement of a client's pending vouchers.
type PayAllPendingRequest struct {
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PayAllPendingRequest) ToUseCaseInput(clientID string) usecase.PayAllPendingInput {
	return usecase.PayAllPendingInput{
		ClientID:         clientID,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
	}
}
