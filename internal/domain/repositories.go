package domain

import (
	"context"
	"time"
)

type UsageRepository interface {
	// UsedCounts returns, per tenant, the number of addresses that are
	// allocated or were deallocated after reuseCutoff.
	UsedCounts(ctx context.Context, filter UsageFilter, reuseCutoff time.Time) (map[string]int64, error)
	// SubnetCapacities returns every qualifying subnet with its policy
	// exclusions.
	SubnetCapacities(ctx context.Context, filter UsageFilter) ([]SubnetCapacity, error)
}
