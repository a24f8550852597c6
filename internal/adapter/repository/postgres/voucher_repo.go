package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// VoucherRepository implements usecase.VoucherRepository.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

const voucherColumns = `
	id, client_id, delivery_person_id, product_id, quantity, unit_price, total_amount,
	status, delivered_at, paid_at, payment_method, payment_reference, notes, created_at, updated_at
`

// Create inserts a new voucher.
func (r *VoucherRepository) Create(ctx context.Context, voucher *domain.Voucher) error {
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		voucher.ID,
		voucher.ClientID,
		voucher.DeliveryPersonID,
		voucher.ProductID,
		voucher.Quantity,
		decimalToNumeric(voucher.UnitPrice),
		decimalToNumeric(voucher.TotalAmount),
		voucher.Status,
		timePtrToPgTimestamptz(voucher.DeliveredAt),
		timePtrToPgTimestamptz(voucher.PaidAt),
		voucher.PaymentMethod,
		voucher.PaymentReference,
		voucher.Notes,
		timeToPgTimestamptz(voucher.CreatedAt),
		timeToPgTimestamptz(voucher.UpdatedAt),
	)

	return err
}

// GetByID retrieves a voucher by ID.
func (r *VoucherRepository) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`

	voucher, err := scanVoucher(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVoucherNotFound
	}

	return voucher, err
}

// GetByIDForUpdate retrieves a voucher by ID with a FOR UPDATE lock.
func (r *VoucherRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Voucher, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 FOR UPDATE`

	voucher, err := scanVoucher(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVoucherNotFound
	}

	return voucher, err
}

// UpdateStatus persists a voucher's status and lifecycle stamps.
func (r *VoucherRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE vouchers
		SET status = $2, delivered_at = $3, paid_at = $4,
		    payment_method = $5, payment_reference = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query,
		voucher.ID,
		voucher.Status,
		timePtrToPgTimestamptz(voucher.DeliveredAt),
		timePtrToPgTimestamptz(voucher.PaidAt),
		voucher.PaymentMethod,
		voucher.PaymentReference,
		timeToPgTimestamptz(voucher.UpdatedAt),
	)

	return err
}

// ListPendingForUpdate locks and returns a client's pending vouchers, oldest
// first. The locks keep the batch stable until the settlement commits.
func (r *VoucherRepository) ListPendingForUpdate(ctx context.Context, tx usecase.Transaction, clientID string) ([]*domain.Voucher, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE client_id = $1 AND status = 'pending'
		ORDER BY created_at
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVouchers(rows)
}

// SettleAll marks the given vouchers paid with one shared timestamp.
func (r *VoucherRepository) SettleAll(ctx context.Context, tx usecase.Transaction, ids []string, paidAt time.Time, method, reference string) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE vouchers
		SET status = 'paid',
		    delivered_at = COALESCE(delivered_at, $2),
		    paid_at = $2, payment_method = $3, payment_reference = $4, updated_at = $2
		WHERE id = ANY($1)
	`

	tag, err := pgxTx.Exec(ctx, query, ids, timeToPgTimestamptz(paidAt), method, reference)
	if err != nil {
		return err
	}

	if tag.RowsAffected() != int64(len(ids)) {
		return domain.ErrVoucherNotFound
	}

	return nil
}

// ListByClient lists a client's vouchers, optionally filtered by status.
func (r *VoucherRepository) ListByClient(ctx context.Context, clientID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE client_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, clientID, statusPtr(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVouchers(rows)
}

// ListByDeliveryAgent lists an agent's vouchers, optionally filtered by status.
func (r *VoucherRepository) ListByDeliveryAgent(ctx context.Context, agentID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE delivery_person_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, agentID, statusPtr(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVouchers(rows)
}

const voucherStatsQuery = `
	SELECT
		COUNT(*) FILTER (WHERE status = 'pending'),
		COALESCE(SUM(total_amount) FILTER (WHERE status = 'pending'), 0),
		COUNT(*) FILTER (WHERE status = 'delivered'),
		COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0),
		COUNT(*) FILTER (WHERE status = 'paid'),
		COALESCE(SUM(total_amount) FILTER (WHERE status = 'paid'), 0)
	FROM vouchers
	WHERE ($1::timestamptz IS NULL OR created_at >= $1)
	  AND ($2::timestamptz IS NULL OR created_at <= $2)
`

// StatsForClient aggregates a client's vouchers by status.
func (r *VoucherRepository) StatsForClient(ctx context.Context, clientID string, from, to *time.Time) (*domain.VoucherStats, error) {
	query := voucherStatsQuery + ` AND client_id = $3`

	return r.queryStats(ctx, query, timePtrToPgTimestamptz(from), timePtrToPgTimestamptz(to), clientID)
}

// StatsForDeliveryAgent aggregates an agent's vouchers by status.
func (r *VoucherRepository) StatsForDeliveryAgent(ctx context.Context, agentID string, from, to *time.Time) (*domain.VoucherStats, error) {
	query := voucherStatsQuery + ` AND delivery_person_id = $3`

	return r.queryStats(ctx, query, timePtrToPgTimestamptz(from), timePtrToPgTimestamptz(to), agentID)
}

// StatsGlobal aggregates all vouchers by status.
func (r *VoucherRepository) StatsGlobal(ctx context.Context, from, to *time.Time) (*domain.VoucherStats, error) {
	return r.queryStats(ctx, voucherStatsQuery, timePtrToPgTimestamptz(from), timePtrToPgTimestamptz(to))
}

func (r *VoucherRepository) queryStats(ctx context.Context, query string, args ...any) (*domain.VoucherStats, error) {
	var (
		stats                                   domain.VoucherStats
		pendingTotal, deliveredTotal, paidTotal pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.PendingCount,
		&pendingTotal,
		&stats.DeliveredCount,
		&deliveredTotal,
		&stats.PaidCount,
		&paidTotal,
	)
	if err != nil {
		return nil, err
	}

	stats.PendingTotal = numericToDecimal(pendingTotal)
	stats.DeliveredTotal = numericToDecimal(deliveredTotal)
	stats.PaidTotal = numericToDecimal(paidTotal)

	return &stats, nil
}

// PendingByClient aggregates pending vouchers per client.
func (r *VoucherRepository) PendingByClient(ctx context.Context) ([]*domain.ClientPending, error) {
	query := `
		SELECT client_id, COUNT(*), COALESCE(SUM(total_amount), 0), MIN(created_at)
		FROM vouchers
		WHERE status = 'pending'
		GROUP BY client_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []*domain.ClientPending
	for rows.Next() {
		var (
			p     domain.ClientPending
			total pgtype.Numeric
		)

		if err := rows.Scan(&p.ClientID, &p.PendingCount, &total, &p.OldestPendingAt); err != nil {
			return nil, err
		}

		p.PendingTotal = numericToDecimal(total)
		pending = append(pending, &p)
	}

	return pending, rows.Err()
}

func statusPtr(status *domain.VoucherStatus) pgtype.Text {
	if status == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: string(*status), Valid: true}
}

func collectVouchers(rows pgx.Rows) ([]*domain.Voucher, error) {
	var vouchers []*domain.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, voucher)
	}

	return vouchers, rows.Err()
}

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var (
		voucher             domain.Voucher
		unitPrice, total    pgtype.Numeric
		deliveredAt, paidAt pgtype.Timestamptz
	)

	err := row.Scan(
		&voucher.ID,
		&voucher.ClientID,
		&voucher.DeliveryPersonID,
		&voucher.ProductID,
		&voucher.Quantity,
		&unitPrice,
		&total,
		&voucher.Status,
		&deliveredAt,
		&paidAt,
		&voucher.PaymentMethod,
		&voucher.PaymentReference,
		&voucher.Notes,
		&voucher.CreatedAt,
		&voucher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	voucher.UnitPrice = numericToDecimal(unitPrice)
	voucher.TotalAmount = numericToDecimal(total)
	voucher.DeliveredAt = pgTimestamptzToTimePtr(deliveredAt)
	voucher.PaidAt = pgTimestamptzToTimePtr(paidAt)

	return &voucher, nil
}
