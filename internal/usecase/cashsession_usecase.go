package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/infrastructure/metrics"
)

// CashSessionUseCase governs the single active cash-drawer session, records
// movements against it, and reconciles expected vs. counted cash at close.
type CashSessionUseCase struct {
	txManager    TransactionManager
	sessionRepo  CashSessionRepository
	movementRepo CashMovementRepository
	sales        SaleLedger
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewCashSessionUseCase creates a new CashSessionUseCase.
func NewCashSessionUseCase(
	txManager TransactionManager,
	sessionRepo CashSessionRepository,
	movementRepo CashMovementRepository,
	sales SaleLedger,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *CashSessionUseCase {
	return &CashSessionUseCase{
		txManager:    txManager,
		sessionRepo:  sessionRepo,
		movementRepo: movementRepo,
		sales:        sales,
		idGen:        idGen,
		metrics:      metrics,
	}
}

// OpenSessionInput represents input for opening a session.
type OpenSessionInput struct {
	OpeningAmount decimal.Decimal
	Notes         string
	OperatorID    string
}

// Open creates the single open session. The store's partial unique index is
// the authority on "at most one open": concurrent opens race on the insert,
// not on a check-then-act read.
func (uc *CashSessionUseCase) Open(ctx context.Context, input OpenSessionInput) (*domain.CashSession, error) {
	if err := domain.ValidateNonNegativeAmount(input.OpeningAmount); err != nil {
		return nil, err
	}

	session := &domain.CashSession{
		ID:            uc.idGen.Generate(),
		OpeningAmount: domain.RoundMoney(input.OpeningAmount),
		OpenedBy:      input.OperatorID,
		OpenedAt:      time.Now().UTC(),
		Status:        domain.SessionOpen,
		Notes:         input.Notes,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SessionsOpened.Inc()
	}

	return session, nil
}

// RecordMovementInput represents input for recording a manual movement.
type RecordMovementInput struct {
	Type       domain.MovementType
	Amount     decimal.Decimal
	Concept    string
	Reference  string
	OperatorID string
}

// RecordMovement appends an income/expense to the open session. The open
// session row is locked for the insert so a concurrent close cannot compute
// its expected amount without this movement.
func (uc *CashSessionUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*domain.CashMovement, error) {
	movement := &domain.CashMovement{
		ID:        uc.idGen.Generate(),
		Type:      input.Type,
		Amount:    domain.RoundMoney(input.Amount),
		Concept:   input.Concept,
		Reference: input.Reference,
		UserID:    input.OperatorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	session, err := uc.sessionRepo.GetOpenForUpdate(txCtx, tx)
	if err != nil {
		return nil, err
	}

	movement.CashSessionID = session.ID

	if err := uc.movementRepo.Create(txCtx, tx, movement); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsRecorded.WithLabelValues(string(movement.Type)).Inc()
	}

	return movement, nil
}

// CloseSessionInput represents input for closing the open session.
type CloseSessionInput struct {
	ActualAmount decimal.Decimal
	Notes        string
	OperatorID   string
}

// Close reconciles and closes the open session. The session row is locked,
// the completed-sales total and movement sums are read inside the same
// transaction, and the close commits atomically or not at all. Closing when
// no session is open fails with a conflict: the operation is intentionally
// not idempotent.
func (uc *CashSessionUseCase) Close(ctx context.Context, input CloseSessionInput) (*domain.CashSession, error) {
	if err := domain.ValidateNonNegativeAmount(input.ActualAmount); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	session, err := uc.sessionRepo.GetOpenForUpdate(txCtx, tx)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return nil, domain.ErrSessionNotClosable
		}

		return nil, err
	}

	// A wrong expected amount is worse than an explicit error: any failed
	// read here aborts the whole close.
	salesTotal, err := uc.sales.SumPaidSince(txCtx, tx, session.OpenedAt)
	if err != nil {
		return nil, err
	}

	incomes, expenses, err := uc.movementRepo.SumBySession(txCtx, tx, session.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := domain.ExpectedClose(session.OpeningAmount, salesTotal, incomes, expenses)
	actual := domain.RoundMoney(input.ActualAmount)
	difference := actual.Sub(expected)

	session.Status = domain.SessionClosed
	session.ClosedBy = &input.OperatorID
	session.ClosedAt = &now
	session.ExpectedAmount = &expected
	session.ActualAmount = &actual
	session.Difference = &difference
	session.AppendNotes(input.Notes)

	if err := uc.sessionRepo.Close(txCtx, tx, session); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SessionsClosed.Inc()
		diff, _ := difference.Float64()
		uc.metrics.SessionCloseDifference.Observe(diff)
	}

	return session, nil
}

// CurrentSessionOutput is the dashboard view of the drawer.
type CurrentSessionOutput struct {
	Open      bool
	Session   *domain.CashSession
	Movements []*domain.CashMovement
	Summary   domain.SessionSummary
}

// CurrentSession returns the open session with its movements, sales since
// open, and derived running balance. No open session is a normal state, not
// an error: dashboards poll this constantly.
func (uc *CashSessionUseCase) CurrentSession(ctx context.Context) (*CurrentSessionOutput, error) {
	session, err := uc.sessionRepo.GetOpen(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return &CurrentSessionOutput{Open: false}, nil
		}

		return nil, err
	}

	movements, err := uc.movementRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	salesTotal, err := uc.sales.SumPaidSince(ctx, nil, session.OpenedAt)
	if err != nil {
		return nil, err
	}

	return &CurrentSessionOutput{
		Open:      true,
		Session:   session,
		Movements: movements,
		Summary:   domain.BuildSessionSummary(session.OpeningAmount, salesTotal, movements),
	}, nil
}

// HistoryInput represents input for listing closed sessions.
type HistoryInput struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// History lists closed sessions filtered by closing date.
func (uc *CashSessionUseCase) History(ctx context.Context, input HistoryInput) ([]*domain.CashSession, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.sessionRepo.ListClosed(ctx, input.From, input.To, limit, offset)
}

// SessionReportOutput is the reconciliation detail of one session.
type SessionReportOutput struct {
	Session   *domain.CashSession
	Movements []*domain.CashMovement
}

// SessionReport returns one session with its movement trail.
func (uc *CashSessionUseCase) SessionReport(ctx context.Context, sessionID string) (*SessionReportOutput, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	movements, err := uc.movementRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &SessionReportOutput{Session: session, Movements: movements}, nil
}
