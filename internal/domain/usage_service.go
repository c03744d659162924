package domain

import (
	"context"
	"encoding/binary"
	"fmt"
	"net/netip"
	"time"

	"go4.org/netipx"
)

type usageService struct {
	repo        UsageRepository
	filter      UsageFilter
	reuseWindow time.Duration
	now         func() time.Time
}

func NewUsageService(repo UsageRepository, filter UsageFilter, reuseWindow time.Duration) UsageService {
	return &usageService{
		repo:        repo,
		filter:      filter,
		reuseWindow: reuseWindow,
		now:         time.Now,
	}
}

// UsedIPs counts, per tenant, addresses that are allocated or were
// deallocated too recently to be reissued.
func (s *usageService) UsedIPs(ctx context.Context) (map[string]int64, error) {
	cutoff := s.now().Add(-s.reuseWindow)
	return s.repo.UsedCounts(ctx, s.filter, cutoff)
}

// UnusedIPs accumulates subnet capacity minus policy exclusions per tenant,
// then subtracts the used counts. A tenant without a qualifying subnet is
// absent from the result even when it has a used count. Results are not
// clamped at zero.
func (s *usageService) UnusedIPs(ctx context.Context, used map[string]int64) (map[string]int64, error) {
	subnets, err := s.repo.SubnetCapacities(ctx, s.filter)
	if err != nil {
		return nil, err
	}

	unused := make(map[string]int64, len(subnets))
	for _, subnet := range subnets {
		capacity, err := usableCapacity(subnet)
		if err != nil {
			return nil, err
		}
		unused[subnet.TenantID] += capacity
	}

	for tenant := range unused {
		unused[tenant] -= used[tenant]
	}

	return unused, nil
}

func (s *usageService) Report(ctx context.Context) (UsageReport, error) {
	used, err := s.UsedIPs(ctx)
	if err != nil {
		return UsageReport{}, err
	}

	unused, err := s.UnusedIPs(ctx, used)
	if err != nil {
		return UsageReport{}, err
	}

	return UsageReport{Used: used, Unused: unused}, nil
}

func usableCapacity(subnet SubnetCapacity) (int64, error) {
	if !subnet.CIDR.Addr().Is4() {
		return 0, fmt.Errorf("%w: subnet %s is not ipv4", ErrInvalidInput, subnet.CIDR)
	}

	excluded, err := exclusionSize(subnet.CIDR, subnet.PolicyCIDRs)
	if err != nil {
		return 0, err
	}

	return prefixSize(subnet.CIDR) - excluded, nil
}

// exclusionSize counts the addresses withheld by the policy CIDRs, clipped
// to the subnet itself so overlapping or stray ranges are not counted twice.
func exclusionSize(subnet netip.Prefix, policy []netip.Prefix) (int64, error) {
	if len(policy) == 0 {
		return 0, nil
	}

	var pb netipx.IPSetBuilder
	for _, p := range policy {
		pb.AddPrefix(p)
	}
	policySet, err := pb.IPSet()
	if err != nil {
		return 0, err
	}

	var sb netipx.IPSetBuilder
	sb.AddPrefix(subnet)
	sb.Intersect(policySet)
	excluded, err := sb.IPSet()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, r := range excluded.Ranges() {
		total += rangeSize(r)
	}
	return total, nil
}

func prefixSize(p netip.Prefix) int64 {
	return int64(1) << (32 - p.Bits())
}

func rangeSize(r netipx.IPRange) int64 {
	from := binary.BigEndian.Uint32(r.From().AsSlice())
	to := binary.BigEndian.Uint32(r.To().AsSlice())
	return int64(to-from) + 1
}
