package domain

import "context"

type UsageService interface {
	UsedIPs(ctx context.Context) (map[string]int64, error)
	UnusedIPs(ctx context.Context, used map[string]int64) (map[string]int64, error)
	Report(ctx context.Context) (UsageReport, error)
}
