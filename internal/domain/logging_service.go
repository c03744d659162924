package domain

import (
	"context"
	"log/slog"
)

type loggingUsageService struct {
	logger *slog.Logger
	next   UsageService
}

func NewLoggingUsageService(logger *slog.Logger, next UsageService) UsageService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingUsageService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingUsageService) UsedIPs(ctx context.Context) (map[string]int64, error) {
	used, err := s.next.UsedIPs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "count used ips failed", "err", err.Error())
		return nil, err
	}

	s.logger.DebugContext(ctx, "counted used ips", "tenants", len(used))
	return used, nil
}

func (s *loggingUsageService) UnusedIPs(ctx context.Context, used map[string]int64) (map[string]int64, error) {
	unused, err := s.next.UnusedIPs(ctx, used)
	if err != nil {
		s.logger.ErrorContext(ctx, "count unused ips failed", "err", err.Error())
		return nil, err
	}

	s.logger.DebugContext(ctx, "counted unused ips", "tenants", len(unused))
	return unused, nil
}

func (s *loggingUsageService) Report(ctx context.Context) (UsageReport, error) {
	report, err := s.next.Report(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "usage report failed", "err", err.Error())
		return UsageReport{}, err
	}

	s.logger.InfoContext(ctx, "usage report ready",
		"used_tenants", len(report.Used),
		"unused_tenants", len(report.Unused),
	)
	return report, nil
}
