package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// PendingByClientCacheTTL is how long the collection report is cached
	PendingByClientCacheTTL = 30 * time.Second
)
