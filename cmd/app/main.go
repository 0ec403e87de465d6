package main

import (
	"context"
	"log"

	httpin "drinkstand/internal/adapters/inbound/http"
	"drinkstand/internal/adapters/outbound/csvfile"
	kafkaout "drinkstand/internal/adapters/outbound/kafka"
	"drinkstand/internal/adapters/outbound/memory"
	"drinkstand/internal/adapters/outbound/postgres"
	"drinkstand/internal/adapters/outbound/sqlite"
	"drinkstand/internal/app/config"
	"drinkstand/internal/app/runtime"
	"drinkstand/internal/core/service"
	"drinkstand/internal/core/session"
	"drinkstand/internal/migrations"
	"drinkstand/internal/ports/outbound"
)

type storage struct {
	menu   outbound.MenuRepository
	orders outbound.OrderLog
	close  func()
}

func main() {
	ctx, stop := runtime.NotifyContext(context.Background())
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}
	defer store.close()
	log.Printf("[storage] backend=%s", cfg.StorageBackend)

	var pub outbound.OrderPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafkaout.NewPublisher(kafkaout.PublisherConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer func() { _ = p.Close() }()
		pub = p
		log.Printf("[kafka] publishing saved orders to %s", cfg.KafkaTopic)
	}

	menuSvc := service.NewMenuService(store.menu)
	orderSvc := service.NewOrderService(store.orders, pub)

	// load once so a missing or corrupt menu file is repaired at startup
	if menu, err := menuSvc.Menu(ctx); err != nil {
		log.Printf("[warmup] menu: %v", err)
	} else {
		log.Printf("[warmup] menu loaded: %d drinks", len(menu))
	}

	sessions := session.NewStore(cfg.SessionTTL)
	dispatcher := service.NewDispatcher(menuSvc, orderSvc, cfg.AccessPIN)

	// HTTP
	handlers := httpin.NewHandlers(menuSvc, orderSvc, dispatcher, cfg.ShareBaseURL)
	ui := httpin.NewUI(menuSvc, orderSvc, dispatcher, cfg.ShareBaseURL, cfg.HistoryLimit)
	httpSrv := runtime.NewHTTPServer(cfg.HTTPAddr, httpin.NewMux(handlers, ui, sessions))
	if err := httpSrv.Run(ctx, cfg.ShutdownTimeout); err != nil {
		log.Printf("[http] %v", err)
	}

	created, hits, misses := sessions.Stats()
	log.Printf("[shutdown] sessions created=%d hits=%d misses=%d live=%d", created, hits, misses, sessions.Len())
	log.Printf("[shutdown] bye")
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage{
			menu:   memory.NewMenuRepository(),
			orders: memory.NewOrderLog(),
			close:  func() {},
		}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return storage{}, err
		}
		return storage{
			menu:   sqlite.NewMenuRepository(db),
			orders: sqlite.NewOrderLog(db),
			close:  func() { _ = db.Close() },
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, migrations.FS)
		if err != nil {
			return storage{}, err
		}
		return storage{
			menu:   db.Menu(),
			orders: db.Orders(),
			close:  db.Close,
		}, nil

	default:
		return storage{
			menu:   csvfile.NewMenuRepository(cfg.MenuPath),
			orders: csvfile.NewOrderLog(cfg.OrdersPath),
			close:  func() {},
		}, nil
	}
}
