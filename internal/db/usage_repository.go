package db

import (
	"context"
	"time"

	"github.com/Flarenzy/ipam-usage/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The disjunction on deallocation lives in the join condition so that a
// subnet with no matching addresses still produces a zero count.
const usedCountsQuery = `
SELECT s.tenant_id, COUNT(ia.id)
FROM subnets s
LEFT JOIN ip_addresses ia
  ON ia.subnet_id = s.id
 AND (ia.deallocated = FALSE OR ia.deallocated_at > $3)
WHERE s.do_not_use = FALSE
  AND s.network_id = $1
  AND s.ip_version = 4
  AND (s.tenant_id LIKE '%-%' OR s.tenant_id = $2)
GROUP BY s.tenant_id`

const subnetCapacitiesQuery = `
SELECT s.tenant_id, s.cidr,
       COALESCE(array_agg(pc.cidr) FILTER (WHERE pc.cidr IS NOT NULL), '{}')
FROM subnets s
LEFT JOIN ip_policy_cidrs pc ON pc.ip_policy_id = s.ip_policy_id
WHERE s.do_not_use = FALSE
  AND s.network_id = $1
  AND s.ip_version = 4
  AND (s.tenant_id LIKE '%-%' OR s.tenant_id = $2)
GROUP BY s.id, s.tenant_id, s.cidr`

type UsageRepository struct {
	pool *pgxpool.Pool
}

func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

func (r *UsageRepository) UsedCounts(ctx context.Context, filter domain.UsageFilter, reuseCutoff time.Time) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, usedCountsQuery, toPgUUID(filter.NetworkID), filter.SharedTenant, reuseCutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := make(map[string]int64)
	for rows.Next() {
		var tenant string
		var count int64
		if err := rows.Scan(&tenant, &count); err != nil {
			return nil, err
		}
		used[tenant] = count
	}

	return used, rows.Err()
}

func (r *UsageRepository) SubnetCapacities(ctx context.Context, filter domain.UsageFilter) ([]domain.SubnetCapacity, error) {
	rows, err := r.pool.Query(ctx, subnetCapacitiesQuery, toPgUUID(filter.NetworkID), filter.SharedTenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SubnetCapacity
	for rows.Next() {
		var subnet domain.SubnetCapacity
		if err := rows.Scan(&subnet.TenantID, &subnet.CIDR, &subnet.PolicyCIDRs); err != nil {
			return nil, err
		}
		out = append(out, subnet)
	}

	return out, rows.Err()
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	var parsed pgtype.UUID
	copy(parsed.Bytes[:], id[:])
	parsed.Valid = true

	return parsed
}
