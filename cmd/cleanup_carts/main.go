// Command cleanup_carts deletes abandoned cart slots: rows whose snapshot
// has not been written within the retention window. Intended as a periodic
// job; with -dry-run it only reports what it would delete.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

type cleanupConfig struct {
	SpannerDB     string
	RetentionDays int
	BatchSize     int64
	DryRun        bool
}

func main() {
	cfg := cleanupConfig{}
	flag.StringVar(&cfg.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&cfg.RetentionDays, "retention", 30, "Retention days for untouched cart slots")
	flag.Int64Var(&cfg.BatchSize, "batch-size", 500, "Maximum slots deleted per commit")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	log := logrus.New()
	if cfg.SpannerDB == "" {
		log.Fatal("-database flag is required")
	}

	if err := cleanupCarts(context.Background(), log, cfg); err != nil {
		log.WithError(err).Fatal("cleanup failed")
	}
	log.Info("cleanup completed")
}

func cleanupCarts(ctx context.Context, log *logrus.Logger, cfg cleanupConfig) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	store := repo.NewSnapshotRepo(client)
	comm := committer.NewCommitter(client)

	deadline := time.Now().UTC().AddDate(0, 0, -cfg.RetentionDays)
	log.WithFields(logrus.Fields{
		"cutoff":  deadline,
		"dry_run": cfg.DryRun,
	}).Info("starting abandoned cart cleanup")

	total := 0
	for {
		ids, err := store.ListStale(ctx, deadline, cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to list stale carts: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		if cfg.DryRun {
			for _, id := range ids {
				log.WithField("cart_id", id).Info("would delete cart slot")
			}
			total += len(ids)
			break
		}

		plan := committer.NewPlan()
		for _, id := range ids {
			plan.Add(store.DeleteMut(id))
		}
		if err := comm.Apply(ctx, plan); err != nil {
			return fmt.Errorf("failed to delete cart batch: %w", err)
		}

		total += len(ids)
		log.WithField("deleted", len(ids)).Info("deleted cart batch")

		if int64(len(ids)) < cfg.BatchSize {
			break
		}
	}

	if cfg.DryRun {
		log.WithField("count", total).Info("dry run: no slots deleted")
	} else {
		log.WithField("count", total).Info("stale cart slots deleted")
	}
	return nil
}
