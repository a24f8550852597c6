package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/infrastructure/metrics"
)

// VoucherUseCase tracks per-delivery deferred charges through their
// pending -> delivered -> paid lifecycle, including month-end batch
// settlement.
type VoucherUseCase struct {
	txManager   TransactionManager
	voucherRepo VoucherRepository
	auditRepo   AuditRepository
	clients     ClientDirectory
	products    ProductCatalog
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewVoucherUseCase creates a new VoucherUseCase.
func NewVoucherUseCase(
	txManager TransactionManager,
	voucherRepo VoucherRepository,
	auditRepo AuditRepository,
	clients ClientDirectory,
	products ProductCatalog,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *VoucherUseCase {
	return &VoucherUseCase{
		txManager:   txManager,
		voucherRepo: voucherRepo,
		auditRepo:   auditRepo,
		clients:     clients,
		products:    products,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreateVoucherInput represents input for creating a voucher at delivery time.
type CreateVoucherInput struct {
	ClientID         string
	ProductID        string
	Quantity         int
	UnitPrice        decimal.Decimal
	Notes            string
	DeliveryPersonID string
}

// Create records a deferred charge for a delivery. The total is computed
// here from quantity and unit price, never trusted from the caller.
func (uc *VoucherUseCase) Create(ctx context.Context, input CreateVoucherInput) (*domain.Voucher, error) {
	now := time.Now().UTC()
	voucher := &domain.Voucher{
		ID:               uc.idGen.Generate(),
		ClientID:         input.ClientID,
		DeliveryPersonID: input.DeliveryPersonID,
		ProductID:        input.ProductID,
		Quantity:         input.Quantity,
		UnitPrice:        domain.RoundMoney(input.UnitPrice),
		Status:           domain.VoucherPending,
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := voucher.Validate(); err != nil {
		return nil, err
	}

	voucher.TotalAmount = domain.VoucherTotal(voucher.Quantity, voucher.UnitPrice)

	if _, err := uc.clients.GetClient(ctx, nil, input.ClientID); err != nil {
		return nil, err
	}

	if _, err := uc.products.GetProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	if err := uc.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.VouchersCreated.Inc()
	}

	return voucher, nil
}

// TransitionInput represents input for a normal forward transition.
type TransitionInput struct {
	VoucherID        string
	Target           domain.VoucherStatus
	Actor            domain.Actor
	PaymentMethod    string
	PaymentReference string
}

// Transition moves a voucher one step forward. Role and ownership are
// enforced here on top of whatever the identity module claimed; the voucher
// row stays locked for the read-check-update.
func (uc *VoucherUseCase) Transition(ctx context.Context, input TransitionInput) (*domain.Voucher, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	voucher, err := uc.voucherRepo.GetByIDForUpdate(txCtx, tx, input.VoucherID)
	if err != nil {
		return nil, err
	}

	if err := voucher.CanTransition(input.Actor, input.Target); err != nil {
		return nil, err
	}

	voucher.SetStatus(input.Target, time.Now().UTC(), input.PaymentMethod, input.PaymentReference)

	if err := uc.voucherRepo.UpdateStatus(txCtx, tx, voucher); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.VoucherTransitions.WithLabelValues(string(input.Target)).Inc()
	}

	return voucher, nil
}

// ForceSetStatusInput represents input for the administrative override.
type ForceSetStatusInput struct {
	VoucherID        string
	Target           domain.VoucherStatus
	Reason           string
	Actor            domain.Actor
	PaymentMethod    string
	PaymentReference string
}

// ForceSetStatus sets a voucher to any status, including backward moves.
// This is correction tooling, separate from Transition so the forward-only
// rule stays mechanically checkable; it requires the admin role, a reason,
// and leaves an audit record in the same transaction.
func (uc *VoucherUseCase) ForceSetStatus(ctx context.Context, input ForceSetStatusInput) (*domain.Voucher, error) {
	if input.Actor.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}

	if input.Reason == "" {
		return nil, domain.ErrReasonRequired
	}

	if !input.Target.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	voucher, err := uc.voucherRepo.GetByIDForUpdate(txCtx, tx, input.VoucherID)
	if err != nil {
		return nil, err
	}

	before := domain.MarshalState(voucher)

	voucher.SetStatus(input.Target, time.Now().UTC(), input.PaymentMethod, input.PaymentReference)

	if err := uc.voucherRepo.UpdateStatus(txCtx, tx, voucher); err != nil {
		return nil, err
	}

	auditLog := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       input.Actor.ID,
		Action:       string(domain.AuditActionVoucherForceStatus),
		ResourceType: "voucher",
		ResourceID:   voucher.ID,
		Reason:       input.Reason,
		BeforeState:  before,
		AfterState:   domain.MarshalState(voucher),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.auditRepo.CreateTx(txCtx, tx, auditLog); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.VoucherOverrides.Inc()
	}

	return voucher, nil
}

// PayAllPendingInput represents input for a batch settlement.
type PayAllPendingInput struct {
	ClientID         string
	PaymentMethod    string
	PaymentReference string
}

// PayAllPendingOutput is the result of a batch settlement.
type PayAllPendingOutput struct {
	Count       int
	TotalAmount decimal.Decimal
	PaidAt      time.Time
}

// PayAllPending settles every pending voucher of a client in one
// transaction with one shared paid timestamp. All or nothing: a partial
// batch is never observable. The batch locks many rows at once and can
// deadlock against single-voucher transitions, so the whole transaction is
// retried on transient failures.
func (uc *VoucherUseCase) PayAllPending(ctx context.Context, input PayAllPendingInput) (*PayAllPendingOutput, error) {
	var out *PayAllPendingOutput

	settle := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		vouchers, err := uc.voucherRepo.ListPendingForUpdate(txCtx, tx, input.ClientID)
		if err != nil {
			return err
		}

		if len(vouchers) == 0 {
			return domain.ErrNothingToPay
		}

		paidAt := time.Now().UTC()
		total := decimal.Zero
		ids := make([]string, 0, len(vouchers))

		for _, v := range vouchers {
			total = total.Add(v.TotalAmount)
			ids = append(ids, v.ID)
		}

		if err := uc.voucherRepo.SettleAll(txCtx, tx, ids, paidAt, input.PaymentMethod, input.PaymentReference); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		out = &PayAllPendingOutput{
			Count:       len(ids),
			TotalAmount: domain.RoundMoney(total),
			PaidAt:      paidAt,
		}
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, settle)
	} else {
		err = settle()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.VoucherTransitions.WithLabelValues(string(domain.VoucherPaid)).Add(float64(out.Count))
		uc.metrics.VoucherBatchSize.Observe(float64(out.Count))
	}

	return out, nil
}

// Get retrieves a voucher by ID.
func (uc *VoucherUseCase) Get(ctx context.Context, id string) (*domain.Voucher, error) {
	return uc.voucherRepo.GetByID(ctx, id)
}

// AuditTrail returns the override history of a voucher, newest first.
func (uc *VoucherUseCase) AuditTrail(ctx context.Context, voucherID string) ([]*domain.AuditLog, error) {
	if _, err := uc.voucherRepo.GetByID(ctx, voucherID); err != nil {
		return nil, err
	}

	return uc.auditRepo.GetByResourceID(ctx, "voucher", voucherID)
}

// ListVouchersInput represents input for voucher listings.
type ListVouchersInput struct {
	ClientID         string
	DeliveryPersonID string
	Status           *domain.VoucherStatus
	Limit            int
	Offset           int
}

// List lists vouchers for a client or a delivery agent, optionally filtered
// by status.
func (uc *VoucherUseCase) List(ctx context.Context, input ListVouchersInput) ([]*domain.Voucher, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	if input.DeliveryPersonID != "" {
		return uc.voucherRepo.ListByDeliveryAgent(ctx, input.DeliveryPersonID, input.Status, limit, offset)
	}

	return uc.voucherRepo.ListByClient(ctx, input.ClientID, input.Status, limit, offset)
}

// StatsInput represents input for voucher aggregates.
type StatsInput struct {
	ClientID         string
	DeliveryPersonID string
	From             *time.Time
	To               *time.Time
}

// Stats returns counts and sums grouped by status for a client, a delivery
// agent, or globally when neither is set.
func (uc *VoucherUseCase) Stats(ctx context.Context, input StatsInput) (*domain.VoucherStats, error) {
	switch {
	case input.ClientID != "":
		return uc.voucherRepo.StatsForClient(ctx, input.ClientID, input.From, input.To)
	case input.DeliveryPersonID != "":
		return uc.voucherRepo.StatsForDeliveryAgent(ctx, input.DeliveryPersonID, input.From, input.To)
	default:
		return uc.voucherRepo.StatsGlobal(ctx, input.From, input.To)
	}
}
