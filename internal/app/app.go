package app

import (
	"context"
	"fmt"
	"log/slog"

	"restaurant-storefront/config"
	httpapi "restaurant-storefront/internal/api/http"
	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/notify"
	"restaurant-storefront/internal/service"
	"restaurant-storefront/internal/storage"
)

// App holds the wired services for one configured store.
type App struct {
	Menu      *service.MenuService
	Cart      *service.CartService
	POSCart   *service.CartService
	Customers *service.CustomerService
	Orders    *service.OrderService
	Checkout  *service.CheckoutService
	Settings  *service.SettingsService
	Auth      *service.AuthService
	Dashboard *service.DashboardService

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	kv, err := a.openKV(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	var publisher service.EventPublisher = storage.NopPublisher{}
	if cfg.Kafka.Enabled {
		writer := config.NewKafkaWriter(cfg.Kafka)
		a.closers = append(a.closers, writer.Close)
		publisher = storage.NewKafkaPublisher(writer)
		logger.Info("order events enabled", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}

	store := service.NewStore(storage.NewRepository(kv))
	notifier := notify.NewWhatsApp(cfg.WhatsApp.BaseURL)
	qr := &service.DefaultQRGenerator{BaseURL: cfg.Server.PublicURL}

	a.Menu = service.NewMenuService(store)
	a.Cart = service.NewCartService(store, domain.CollectionCart)
	a.POSCart = service.NewCartService(store, domain.CollectionPOSCart)
	a.Customers = service.NewCustomerService(store)
	a.Orders = service.NewOrderService(store, notifier, publisher, qr)
	a.Checkout = service.NewCheckoutService(store, notifier, publisher)
	a.Settings = service.NewSettingsService(store)
	a.Auth = service.NewAuthService(store)
	a.Dashboard = service.NewDashboardService(store, nil)
	return a, nil
}

func (a *App) openKV(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.KV, error) {
	logger = logger.With("driver", cfg.Storage.Driver)
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("using in-memory store, nothing will survive a restart")
		return storage.NewMemoryKV(), nil
	case "sqlite":
		db, err := config.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		logger.Info("store opened", "path", cfg.Storage.SQLitePath)
		return storage.NewSQLiteKV(db)
	case "redis":
		client := config.MustInitRedis(cfg.Redis)
		a.closers = append(a.closers, client.Close)
		logger.Info("store opened", "addr", client.Options().Addr)
		return storage.NewRedisKV(client, cfg.Redis.KeyPrefix), nil
	case "postgres":
		db := config.MustInitPostgres(cfg.Postgres)
		a.closers = append(a.closers, db.Close)
		kv := storage.NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		logger.Info("store opened", "host", cfg.Postgres.Host, "db", cfg.Postgres.Name)
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (a *App) Handler() *httpapi.Handler {
	return &httpapi.Handler{
		Menu:      a.Menu,
		Cart:      a.Cart,
		POSCart:   a.POSCart,
		Customers: a.Customers,
		Orders:    a.Orders,
		Checkout:  a.Checkout,
		Settings:  a.Settings,
		Auth:      a.Auth,
		Dashboard: a.Dashboard,
	}
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
