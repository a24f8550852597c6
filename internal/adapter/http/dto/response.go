package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// CashSessionResponse represents a cash session in API responses.
type CashSessionResponse struct {
	ID             string           `json:"id"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	OpenedBy       string           `json:"opened_by"`
	OpenedAt       time.Time        `json:"opened_at"`
	Status         string           `json:"status"`
	ClosedBy       *string          `json:"closed_by,omitempty"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expected_amount,omitempty"`
	ActualAmount   *decimal.Decimal `json:"actual_amount,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// CashSessionFromDomain converts a domain session to a response.
func CashSessionFromDomain(s *domain.CashSession) *CashSessionResponse {
	return &CashSessionResponse{
		ID:             s.ID,
		OpeningAmount:  s.OpeningAmount,
		OpenedBy:       s.OpenedBy,
		OpenedAt:       s.OpenedAt,
		Status:         string(s.Status),
		ClosedBy:       s.ClosedBy,
		ClosedAt:       s.ClosedAt,
		ExpectedAmount: s.ExpectedAmount,
		ActualAmount:   s.ActualAmount,
		Difference:     s.Difference,
		Notes:          s.Notes,
	}
}

// CashSessionsFromDomain converts domain sessions to responses.
func CashSessionsFromDomain(sessions []*domain.CashSession) []*CashSessionResponse {
	result := make([]*CashSessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = CashSessionFromDomain(s)
	}
	return result
}

// CashMovementResponse represents a cash movement in API responses.
type CashMovementResponse struct {
	ID            string          `json:"id"`
	CashSessionID string          `json:"cash_session_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Concept       string          `json:"concept"`
	Reference     string          `json:"reference,omitempty"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CashMovementFromDomain converts a domain movement to a response.
func CashMovementFromDomain(m *domain.CashMovement) *CashMovementResponse {
	return &CashMovementResponse{
		ID:            m.ID,
		CashSessionID: m.CashSessionID,
		Type:          string(m.Type),
		Amount:        m.Amount,
		Concept:       m.Concept,
		Reference:     m.Reference,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}

// CashMovementsFromDomain converts domain movements to responses.
func CashMovementsFromDomain(movements []*domain.CashMovement) []*CashMovementResponse {
	result := make([]*CashMovementResponse, len(movements))
	for i, m := range movements {
		result[i] = CashMovementFromDomain(m)
	}
	return result
}

// SessionSummaryResponse is the derived running balance of an open session.
type SessionSummaryResponse struct {
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	IncomesTotal   decimal.Decimal `json:"incomes_total"`
	ExpensesTotal  decimal.Decimal `json:"expenses_total"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// CurrentSessionResponse is the dashboard view of the drawer.
type CurrentSessionResponse struct {
	Open      bool                    `json:"open"`
	Session   *CashSessionResponse    `json:"session,omitempty"`
	Movements []*CashMovementResponse `json:"movements,omitempty"`
	Summary   *SessionSummaryResponse `json:"summary,omitempty"`
}

// CurrentSessionFromOutput converts the use case output to a response.
func CurrentSessionFromOutput(out *usecase.CurrentSessionOutput) *CurrentSessionResponse {
	if !out.Open {
		return &CurrentSessionResponse{Open: false}
	}

	return &CurrentSessionResponse{
		Open:      true,
		Session:   CashSessionFromDomain(out.Session),
		Movements: CashMovementsFromDomain(out.Movements),
		Summary: &SessionSummaryResponse{
			OpeningAmount:  out.Summary.OpeningAmount,
			SalesTotal:     out.Summary.SalesTotal,
			IncomesTotal:   out.Summary.IncomesTotal,
			ExpensesTotal:  out.Summary.ExpensesTotal,
			CurrentBalance: out.Summary.CurrentBalance,
		},
	}
}

// SessionReportResponse is the reconciliation detail of one session.
type SessionReportResponse struct {
	Session   *CashSessionResponse    `json:"session"`
	Movements []*CashMovementResponse `json:"movements"`
}

// CreditAccountResponse represents a credit account in API responses.
type CreditAccountResponse struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"`
	SaleID    *string         `json:"sale_id,omitempty"`
	OrderID   *string         `json:"order_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreditAccountFromDomain converts a domain account to a response.
func CreditAccountFromDomain(a *domain.CreditAccount) *CreditAccountResponse {
	return &CreditAccountResponse{
		ID:        a.ID,
		ClientID:  a.ClientID,
		SaleID:    a.SaleID,
		OrderID:   a.OrderID,
		Amount:    a.Amount,
		Balance:   a.Balance,
		Status:    string(a.Status),
		DueDate:   a.DueDate,
		Notes:     a.Notes,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreditAccountsFromDomain converts domain accounts to responses.
func CreditAccountsFromDomain(accounts []*domain.CreditAccount) []*CreditAccountResponse {
	result := make([]*CreditAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = CreditAccountFromDomain(a)
	}
	return result
}

// CreditPaymentResponse represents a credit payment in API responses.
type CreditPaymentResponse struct {
	ID              string          `json:"id"`
	CreditAccountID string          `json:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	UserID          string          `json:"user_id"`
	PaymentDate     time.Time       `json:"payment_date"`
}

// CreditPaymentFromDomain converts a domain payment to a response.
func CreditPaymentFromDomain(p *domain.CreditPayment) *CreditPaymentResponse {
	return &CreditPaymentResponse{
		ID:              p.ID,
		CreditAccountID: p.CreditAccountID,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		Reference:       p.Reference,
		Notes:           p.Notes,
		UserID:          p.UserID,
		PaymentDate:     p.PaymentDate,
	}
}

// CreditPaymentsFromDomain converts domain payments to responses.
func CreditPaymentsFromDomain(payments []*domain.CreditPayment) []*CreditPaymentResponse {
	result := make([]*CreditPaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = CreditPaymentFromDomain(p)
	}
	return result
}

// CreditDetailResponse is a credit account with its payment history.
type CreditDetailResponse struct {
	Account  *CreditAccountResponse   `json:"account"`
	Payments []*CreditPaymentResponse `json:"payments"`
}

// ApplyPaymentResponse is the result of applying a payment.
type ApplyPaymentResponse struct {
	Payment *CreditPaymentResponse `json:"payment"`
	Account *CreditAccountResponse `json:"account"`
}

// VoucherResponse represents a voucher in API responses.
type VoucherResponse struct {
	ID               string          `json:"id"`
	ClientID         string          `json:"client_id"`
	DeliveryPersonID string          `json:"delivery_person_id"`
	ProductID        string          `json:"product_id"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// VoucherFromDomain converts a domain voucher to a response.
func VoucherFromDomain(v *domain.Voucher) *VoucherResponse {
	return &VoucherResponse{
		ID:               v.ID,
		ClientID:         v.ClientID,
		DeliveryPersonID: v.DeliveryPersonID,
		ProductID:        v.ProductID,
		Quantity:         v.Quantity,
		UnitPrice:        v.UnitPrice,
		TotalAmount:      v.TotalAmount,
		Status:           string(v.Status),
		DeliveredAt:      v.DeliveredAt,
		PaidAt:           v.PaidAt,
		PaymentMethod:    v.PaymentMethod,
		PaymentReference: v.PaymentReference,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

// VouchersFromDomain converts domain vouchers to responses.
func VouchersFromDomain(vouchers []*domain.Voucher) []*VoucherResponse {
	result := make([]*VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		result[i] = VoucherFromDomain(v)
	}
	return result
}

// PayAllPendingResponse is the result of a batch settlement.
type PayAllPendingResponse struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAt      time.Time       `json:"paid_at"`
}

// VoucherStatsResponse aggregates vouchers by status.
type VoucherStatsResponse struct {
	PendingCount   int             `json:"pending_count"`
	PendingTotal   decimal.Decimal `json:"pending_total"`
	DeliveredCount int             `json:"delivered_count"`
	DeliveredTotal decimal.Decimal `json:"delivered_total"`
	PaidCount      int             `json:"paid_count"`
	PaidTotal      decimal.Decimal `json:"paid_total"`
}

// VoucherStatsFromDomain converts domain stats to a response.
func VoucherStatsFromDomain(s *domain.VoucherStats) *VoucherStatsResponse {
	return &VoucherStatsResponse{
		PendingCount:   s.PendingCount,
		PendingTotal:   s.PendingTotal,
		DeliveredCount: s.DeliveredCount,
		DeliveredTotal: s.DeliveredTotal,
		PaidCount:      s.PaidCount,
		PaidTotal:      s.PaidTotal,
	}
}

// AuditLogResponse represents an audit record in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Reason       string      `json:"reason,omitempty"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Reason:       l.Reason,
		BeforeState:  l.BeforeState,
		AfterState:   l.AfterState,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
