package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// MockCashSessionRepository is a mock implementation of CashSessionRepository.
type MockCashSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.CashSession

	CreateFunc           func(ctx context.Context, session *domain.CashSession) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.CashSession, error)
	GetOpenFunc          func(ctx context.Context) (*domain.CashSession, error)
	GetOpenForUpdateFunc func(ctx context.Context, tx usecase.Transaction) (*domain.CashSession, error)
	CloseFunc            func(ctx context.Context, tx usecase.Transaction, session *domain.CashSession) error
	ListClosedFunc       func(ctx context.Context, from, to *time.Time, limit, offset int) ([]*domain.CashSession, error)
}

func NewMockCashSessionRepository() *MockCashSessionRepository {
	return &MockCashSessionRepository{
		sessions: make(map[string]*domain.CashSession),
	}
}

func (m *MockCashSessionRepository) Create(ctx context.Context, session *domain.CashSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Status == domain.SessionOpen {
			return domain.ErrSessionAlreadyOpen
		}
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *MockCashSessionRepository) GetByID(ctx context.Context, id string) (*domain.CashSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockCashSessionRepository) GetOpen(ctx context.Context) (*domain.CashSession, error) {
	if m.GetOpenFunc != nil {
		return m.GetOpenFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.Status == domain.SessionOpen {
			return s, nil
		}
	}
	return nil, domain.ErrNoOpenSession
}

func (m *MockCashSessionRepository) GetOpenForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.CashSession, error) {
	if m.GetOpenForUpdateFunc != nil {
		return m.GetOpenForUpdateFunc(ctx, tx)
	}
	return m.GetOpen(ctx)
}

func (m *MockCashSessionRepository) Close(ctx context.Context, tx usecase.Transaction, session *domain.CashSession) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, tx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockCashSessionRepository) ListClosed(ctx context.Context, from, to *time.Time, limit, offset int) ([]*domain.CashSession, error) {
	if m.ListClosedFunc != nil {
		return m.ListClosedFunc(ctx, from, to, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sessions []*domain.CashSession
	for _, s := range m.sessions {
		if s.Status == domain.SessionClosed {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

// MockCashMovementRepository is a mock implementation of CashMovementRepository.
type MockCashMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.CashMovement

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, movement *domain.CashMovement) error
	ListBySessionFunc func(ctx context.Context, sessionID string) ([]*domain.CashMovement, error)
	SumBySessionFunc  func(ctx context.Context, tx usecase.Transaction, sessionID string) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockCashMovementRepository() *MockCashMovementRepository {
	return &MockCashMovementRepository{
		movements: make(map[string]*domain.CashMovement),
	}
}

func (m *MockCashMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.CashMovement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockCashMovementRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.CashMovement, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.CashMovement
	for _, mv := range m.movements {
		if mv.CashSessionID == sessionID {
			movements = append(movements, mv)
		}
	}
	return movements, nil
}

func (m *MockCashMovementRepository) SumBySession(ctx context.Context, tx usecase.Transaction, sessionID string) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumBySessionFunc != nil {
		return m.SumBySessionFunc(ctx, tx, sessionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	incomes, expenses := decimal.Zero, decimal.Zero
	for _, mv := range m.movements {
		if mv.CashSessionID != sessionID {
			continue
		}
		switch mv.Type {
		case domain.MovementIncome:
			incomes = incomes.Add(mv.Amount)
		case domain.MovementExpense:
			expenses = expenses.Add(mv.Amount)
		}
	}
	return incomes, expenses, nil
}

// MockCreditAccountRepository is a mock implementation of CreditAccountRepository.
type MockCreditAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.CreditAccount

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, account *domain.CreditAccount) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.CreditAccount, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.CreditAccount, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, status domain.CreditStatus, updatedAt time.Time) error
	ListByClientFunc     func(ctx context.Context, clientID string, limit, offset int) ([]*domain.CreditAccount, error)
	ListOverdueFunc      func(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.CreditAccount, error)
}

func NewMockCreditAccountRepository() *MockCreditAccountRepository {
	return &MockCreditAccountRepository{
		accounts: make(map[string]*domain.CreditAccount),
	}
}

func (m *MockCreditAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.CreditAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if account.SaleID != nil && a.SaleID != nil && *a.SaleID == *account.SaleID {
			return domain.ErrCreditExists
		}
		if account.OrderID != nil && a.OrderID != nil && *a.OrderID == *account.OrderID {
			return domain.ErrCreditExists
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockCreditAccountRepository) GetByID(ctx context.Context, id string) (*domain.CreditAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrCreditNotFound
}

func (m *MockCreditAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CreditAccount, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCreditAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, status domain.CreditStatus, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		a.Balance = balance
		a.Status = status
		a.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockCreditAccountRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.CreditAccount, error) {
	if m.ListByClientFunc != nil {
		return m.ListByClientFunc(ctx, clientID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.CreditAccount
	for _, a := range m.accounts {
		if a.ClientID == clientID {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (m *MockCreditAccountRepository) ListOverdue(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.CreditAccount, error) {
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, asOf, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.CreditAccount
	for _, a := range m.accounts {
		if a.IsOverdue(asOf) {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

// MockCreditPaymentRepository is a mock implementation of CreditPaymentRepository.
type MockCreditPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.CreditPayment

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, payment *domain.CreditPayment) error
	ListByAccountFunc func(ctx context.Context, accountID string) ([]*domain.CreditPayment, error)
}

func NewMockCreditPaymentRepository() *MockCreditPaymentRepository {
	return &MockCreditPaymentRepository{
		payments: make(map[string]*domain.CreditPayment),
	}
}

func (m *MockCreditPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.CreditPayment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockCreditPaymentRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.CreditPayment, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.CreditPayment
	for _, p := range m.payments {
		if p.CreditAccountID == accountID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// MockVoucherRepository is a mock implementation of VoucherRepository.
type MockVoucherRepository struct {
	mu       sync.RWMutex
	vouchers map[string]*domain.Voucher

	CreateFunc                func(ctx context.Context, voucher *domain.Voucher) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Voucher, error)
	GetByIDForUpdateFunc      func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Voucher, error)
	UpdateStatusFunc          func(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error
	ListPendingForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, clientID string) ([]*domain.Voucher, error)
	SettleAllFunc             func(ctx context.Context, tx usecase.Transaction, ids []string, paidAt time.Time, method, reference string) error
	ListByClientFunc          func(ctx context.Context, clientID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error)
	ListByDeliveryAgentFunc   func(ctx context.Context, agentID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error)
	StatsForClientFunc        func(ctx context.Context, clientID string, from, to *time.Time) (*domain.VoucherStats, error)
	StatsForDeliveryAgentFunc func(ctx context.Context, agentID string, from, to *time.Time) (*domain.VoucherStats, error)
	StatsGlobalFunc           func(ctx context.Context, from, to *time.Time) (*domain.VoucherStats, error)
	PendingByClientFunc       func(ctx context.Context) ([]*domain.ClientPending, error)
}

func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{
		vouchers: make(map[string]*domain.Voucher),
	}
}

func (m *MockVoucherRepository) Create(ctx context.Context, voucher *domain.Voucher) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, voucher)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.ID] = voucher
	return nil
}

func (m *MockVoucherRepository) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vouchers[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVoucherNotFound
}

func (m *MockVoucherRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Voucher, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockVoucherRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, voucher)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.ID] = voucher
	return nil
}

func (m *MockVoucherRepository) ListPendingForUpdate(ctx context.Context, tx usecase.Transaction, clientID string) ([]*domain.Voucher, error) {
	if m.ListPendingForUpdateFunc != nil {
		return m.ListPendingForUpdateFunc(ctx, tx, clientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var vouchers []*domain.Voucher
	for _, v := range m.vouchers {
		if v.ClientID == clientID && v.Status == domain.VoucherPending {
			vouchers = append(vouchers, v)
		}
	}
	return vouchers, nil
}

func (m *MockVoucherRepository) SettleAll(ctx context.Context, tx usecase.Transaction, ids []string, paidAt time.Time, method, reference string) error {
	if m.SettleAllFunc != nil {
		return m.SettleAllFunc(ctx, tx, ids, paidAt, method, reference)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		v, ok := m.vouchers[id]
		if !ok {
			return domain.ErrVoucherNotFound
		}
		v.Status = domain.VoucherPaid
		v.PaidAt = &paidAt
		v.PaymentMethod = method
		v.PaymentReference = reference
		v.UpdatedAt = paidAt
	}
	return nil
}

func (m *MockVoucherRepository) ListByClient(ctx context.Context, clientID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error) {
	if m.ListByClientFunc != nil {
		return m.ListByClientFunc(ctx, clientID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var vouchers []*domain.Voucher
	for _, v := range m.vouchers {
		if v.ClientID != clientID {
			continue
		}
		if status != nil && v.Status != *status {
			continue
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, nil
}

func (m *MockVoucherRepository) ListByDeliveryAgent(ctx context.Context, agentID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error) {
	if m.ListByDeliveryAgentFunc != nil {
		return m.ListByDeliveryAgentFunc(ctx, agentID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var vouchers []*domain.Voucher
	for _, v := range m.vouchers {
		if v.DeliveryPersonID != agentID {
			continue
		}
		if status != nil && v.Status != *status {
			continue
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, nil
}

func (m *MockVoucherRepository) StatsForClient(ctx context.Context, clientID string, from, to *time.Time) (*domain.VoucherStats, error) {
	if m.StatsForClientFunc != nil {
		return m.StatsForClientFunc(ctx, clientID, from, to)
	}
	return &domain.VoucherStats{}, nil
}

func (m *MockVoucherRepository) StatsForDeliveryAgent(ctx context.Context, agentID string, from, to *time.Time) (*domain.VoucherStats, error) {
	if m.StatsForDeliveryAgentFunc != nil {
		return m.StatsForDeliveryAgentFunc(ctx, agentID, from, to)
	}
	return &domain.VoucherStats{}, nil
}

func (m *MockVoucherRepository) StatsGlobal(ctx context.Context, from, to *time.Time) (*domain.VoucherStats, error) {
	if m.StatsGlobalFunc != nil {
		return m.StatsGlobalFunc(ctx, from, to)
	}
	return &domain.VoucherStats{}, nil
}

func (m *MockVoucherRepository) PendingByClient(ctx context.Context) ([]*domain.ClientPending, error) {
	if m.PendingByClientFunc != nil {
		return m.PendingByClientFunc(ctx)
	}
	return nil, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateTxFunc        func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	GetByResourceIDFunc func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	if m.GetByResourceIDFunc != nil {
		return m.GetByResourceIDFunc(ctx, resourceType, resourceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// Logs returns a snapshot of everything recorded so far.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
