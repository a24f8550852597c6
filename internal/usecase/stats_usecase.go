package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
)

// StatsUseCase composes reads across the ledgers into collection views for
// the admin surface. Read-only: it never writes to the ledgers.
type StatsUseCase struct {
	voucherRepo VoucherRepository
	clients     ClientDirectory
	cache       Cache
	logger      zerolog.Logger
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(
	voucherRepo VoucherRepository,
	clients ClientDirectory,
	cache Cache,
	logger zerolog.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		voucherRepo: voucherRepo,
		clients:     clients,
		cache:       cache,
		logger:      logger,
	}
}

const pendingByClientCacheKey = "stats:pending-by-client"

// ClientPendingSummary is one client's pending-voucher position with its
// collection priority.
type ClientPendingSummary struct {
	ClientID        string                    `json:"client_id"`
	ClientName      string                    `json:"client_name"`
	PendingCount    int                       `json:"pending_count"`
	PendingTotal    decimal.Decimal           `json:"pending_total"`
	OldestPendingAt time.Time                 `json:"oldest_pending_at"`
	Priority        domain.CollectionPriority `json:"priority"`
}

// PendingByClientReport is the collection worklist for the admin surface.
type PendingByClientReport struct {
	GeneratedAt time.Time              `json:"generated_at"`
	EndOfMonth  bool                   `json:"end_of_month"`
	Clients     []ClientPendingSummary `json:"clients"`
}

// PendingByClient builds the per-client pending-voucher report. The
// reference time is an explicit parameter so the priority and end-of-month
// classification stay deterministic. Client-name lookups are decoration
// only: a failed lookup degrades to an empty name and a warning, it never
// fails the report.
func (uc *StatsUseCase) PendingByClient(ctx context.Context, now time.Time) (*PendingByClientReport, error) {
	if report := uc.cachedReport(ctx); report != nil {
		return report, nil
	}

	rows, err := uc.voucherRepo.PendingByClient(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClientPendingSummary, 0, len(rows))
	for _, row := range rows {
		summary := ClientPendingSummary{
			ClientID:        row.ClientID,
			PendingCount:    row.PendingCount,
			PendingTotal:    row.PendingTotal,
			OldestPendingAt: row.OldestPendingAt,
			Priority:        domain.PriorityFor(row.OldestPendingAt, now),
		}

		client, err := uc.clients.GetClient(ctx, nil, row.ClientID)
		if err != nil {
			uc.logger.Warn().Err(err).Str("client_id", row.ClientID).Msg("client lookup failed for pending report")
		} else {
			summary.ClientName = client.Name
		}

		summaries = append(summaries, summary)
	}

	// Worst first: high priority, then oldest debt.
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Priority != summaries[j].Priority {
			return priorityRank(summaries[i].Priority) < priorityRank(summaries[j].Priority)
		}
		return summaries[i].OldestPendingAt.Before(summaries[j].OldestPendingAt)
	})

	report := &PendingByClientReport{
		GeneratedAt: now,
		EndOfMonth:  domain.IsEndOfMonth(now),
		Clients:     summaries,
	}

	uc.storeReport(ctx, report)

	return report, nil
}

func priorityRank(p domain.CollectionPriority) int {
	switch p {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func (uc *StatsUseCase) cachedReport(ctx context.Context) *PendingByClientReport {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, pendingByClientCacheKey)
	if err != nil || data == nil {
		return nil
	}

	var report PendingByClientReport
	if err := json.Unmarshal(data, &report); err != nil {
		uc.logger.Warn().Err(err).Msg("discarding malformed cached pending report")
		return nil
	}

	return &report
}

func (uc *StatsUseCase) storeReport(ctx context.Context, report *PendingByClientReport) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, pendingByClientCacheKey, data, PendingByClientCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to cache pending report")
	}
}
