package usecase

import "time"

const (
	// BalanceCacheTTL bounds staleness of cached balance reads. Cached
	// entries are also invalidated whenever a transfer commits.
	BalanceCacheTTL = 30 * time.Second

	// DefaultTransactionPageSize is used when a listing request does not
	// specify a limit.
	DefaultTransactionPageSize = 20

	// MaxTransactionPageSize caps listing requests.
	MaxTransactionPageSize = 100
)
