package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	ctx, stop := interruptContext(context.Background())
	code := run(ctx, NewArgsGetter())
	stop()

	os.Exit(code)
}

// interruptContext is cancelled by the first SIGINT or SIGTERM. The default
// handlers are restored right after, so a second signal ends the process even
// while an upload is in flight.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

func run(ctx context.Context, args *Args) int {
	settings, err := loadSettings(args.settingsFile)
	if err != nil {
		slog.Error("settings", "error", err)
		return 1
	}
	settings.withArgs(args)

	aws, err := initConfig(ctx,
		withRegion(settings.Region),
		withProfile(settings.Profile),
		withCredentialsFile(settings.CredentialsFile),
	)
	if err != nil {
		slog.Error("credentials", "error", err)
		return 1
	}

	svc := aws.stablishClientWith(
		s3Service(aws.cfg, settings.Endpoint),
		stsService(aws.cfg),
	)
	if settings.Endpoint == "" {
		whoami(ctx, svc.sts)
	}
	slog.Info("destination", "bucket", settings.Bucket, "region", settings.Region, "endpoint", settings.Endpoint)

	catalog, err := newCatalogFinder().locateIn(settings.Catalog).load()
	if err != nil {
		slog.Error("catalog", "error", err)
		return 1
	}
	slog.Info("catalog", "file", catalog.Path, "products", len(catalog.Products))

	urls := imageURLs(catalog.Products)
	slog.Info("catalog", "uniqueImages", len(urls))
	if len(urls) == 0 {
		slog.Warn("catalog", "status", "no image URLs found, nothing to migrate")
		return 0
	}

	workspace, err := newWorkspace()
	if err != nil {
		slog.Error("scratch", "error", err)
		return 1
	}
	defer workspace.cleanup()

	migrator := newMigrator(
		newBucket(svc.s3, settings),
		newFetcher(settings.Timeout),
		workspace,
		settings,
	)

	outcomes, err := migrator.migrate(ctx, urls)
	if err != nil {
		slog.Warn("migration", "status", "interrupted by user", "error", err)
	}

	if len(outcomes) > 0 {
		saveMapping(outcomes, settings.MappingFile)
		printSummary(os.Stdout, outcomes)
	}

	fmt.Fprintf(os.Stdout, "\nCheck %q for the complete URL mapping.\n", settings.MappingFile)
	return 0
}
