package domain

import (
	"net/netip"

	"github.com/google/uuid"
)

// UsageFilter narrows the report to one network and to the tenant naming
// convention: customer tenants carry a hyphen, everything else is only
// counted when it matches the shared tenant literal.
type UsageFilter struct {
	NetworkID    uuid.UUID
	SharedTenant string
}

// SubnetCapacity is one qualifying subnet together with the ranges its IP
// policy withholds from allocation.
type SubnetCapacity struct {
	TenantID    string
	CIDR        netip.Prefix
	PolicyCIDRs []netip.Prefix
}

// UsageReport maps tenant ids to counts of used and unused IPv4 addresses.
type UsageReport struct {
	Used   map[string]int64 `json:"used"`
	Unused map[string]int64 `json:"unused"`
}
