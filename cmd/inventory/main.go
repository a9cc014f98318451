package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/sttnf/project-DDP/pkg/auth"
	"github.com/sttnf/project-DDP/pkg/config"
	"github.com/sttnf/project-DDP/pkg/display"
	"github.com/sttnf/project-DDP/pkg/events"
	"github.com/sttnf/project-DDP/pkg/logger"
	"github.com/sttnf/project-DDP/services/inventory/domain"
	domainevents "github.com/sttnf/project-DDP/services/inventory/domain/events"
	"github.com/sttnf/project-DDP/services/inventory/infrastructure/persistence/jsonfile"

	invservices "github.com/sttnf/project-DDP/services/inventory/application/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	ctx := context.Background()

	bus := events.NewEventBus(log)
	defer bus.Close() //nolint:errcheck

	startAuditSubscriber(ctx, bus, log)

	store := jsonfile.New(cfg.CatalogPath, cfg.LedgerPath)
	products, txs, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedStorage) {
			log.Error("failed to load storage", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred closes are best-effort
		}
		// Degraded mode: start empty in memory; the next successful save
		// replaces the bad files.
		log.Warn("storage is malformed, starting with empty data", "error", err)
		products, txs = nil, nil
	}

	catalog := invservices.NewCatalogService(store, bus, log, products)
	ledger := invservices.NewLedgerService(store, log, txs)
	purchase := invservices.NewPurchaseService(catalog, ledger, bus, log)
	query := invservices.NewCatalogQuery(catalog)

	cli := newCLI(cliDeps{
		catalog:   catalog,
		ledger:    ledger,
		purchase:  purchase,
		query:     query,
		creds:     auth.NewCredentialStore(cfg),
		formatter: display.NewFormatter(cfg.CurrencyPrefix),
		log:       log,
	})
	cli.run(ctx)
}

// startAuditSubscriber logs every domain event the services publish. The
// audit trail lives in the structured log stream, not in the UI.
func startAuditSubscriber(ctx context.Context, bus *events.EventBus, log logger.Logger) {
	topics := []string{
		domainevents.TopicProductAdded,
		domainevents.TopicProductUpdated,
		domainevents.TopicProductDeleted,
		domainevents.TopicPurchaseRecorded,
	}
	for _, topic := range topics {
		errCh, err := bus.Subscribe(ctx, topic, events.AuditHandler(log, topic))
		if err != nil {
			log.Warn("audit subscription failed", "topic", topic, "error", err)
			continue
		}
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "audit subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}
}
