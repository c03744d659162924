package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Flarenzy/ipam-usage/internal/config"
	appdb "github.com/Flarenzy/ipam-usage/internal/db"
	"github.com/Flarenzy/ipam-usage/internal/domain"
)

// Run connects to the IPAM database, computes the per-tenant usage report
// and writes it as a single JSON line to out. The job either prints one
// report or fails before producing any output.
func Run(ctx context.Context, logger *slog.Logger, cfg config.Config, out io.Writer) error {
	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	filter := domain.UsageFilter{
		NetworkID:    cfg.NetworkID,
		SharedTenant: cfg.SharedTenant,
	}
	service := domain.NewLoggingUsageService(logger,
		domain.NewUsageService(appdb.NewUsageRepository(pool), filter, cfg.ReuseWindow))

	report, err := service.Report(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
