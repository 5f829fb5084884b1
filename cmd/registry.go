package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bigdbm/extractreg/internal/config"
	"github.com/bigdbm/extractreg/internal/extracttype/application"
	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/infrastructure/layouts"
	"github.com/bigdbm/extractreg/internal/infrastructure/parquet"
	"github.com/bigdbm/extractreg/internal/infrastructure/sqlite"
	"github.com/bigdbm/extractreg/internal/log"
	"github.com/bigdbm/extractreg/internal/paths"
	"github.com/bigdbm/extractreg/internal/pubsub"
	"github.com/bigdbm/extractreg/internal/tracing"
)

const shutdownTimeout = 5 * time.Second

// LayoutRegistrar records layouts in a writable catalog.
type LayoutRegistrar interface {
	RegisterLayout(ctx context.Context, layoutID, description string) error
}

// registry bundles the registry service with the resources it owns.
type registry struct {
	service   *application.RegistryService
	events    *pubsub.Broker[*domain.ExtractType]
	tracing   *tracing.Provider
	db        *sqlite.DB
	registrar LayoutRegistrar
	cache     *layouts.CachedChecker
	fsRoot    string // filesystem layouts root, empty for other backends
	closers   []func() error
}

// openRegistry builds the registry service for cfg.
func openRegistry(cfg config.Config) (*registry, error) {
	r := &registry{events: pubsub.NewBroker[*domain.ExtractType]()}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	r.tracing = provider

	store, err := r.openStore(cfg.Store)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	checker, err := r.openLayouts(cfg)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	resolver, err := paths.NewProductResolver(cfg.Store.Root)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("store.root: %w", err)
	}

	r.cache = layouts.NewCachedChecker(checker, cfg.Layouts.CacheTTL)
	r.service, err = application.NewRegistryService(application.Deps{
		Resolver: resolver,
		Layouts:  r.cache,
		Store:    store,
		Tracer:   provider.Tracer(),
		Events:   r.events,
		Product:  cfg.ProductBase,
	})
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	log.Debug(log.CatConfig, "registry ready",
		"store", cfg.Store.Backend, "layouts", cfg.Layouts.Backend, "base", r.service.BasePath())
	return r, nil
}

func (r *registry) sqliteDB(path string) (*sqlite.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	expanded, err := paths.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	db, err := sqlite.NewDB(expanded)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	r.db = db
	r.closers = append(r.closers, db.Close)
	return db, nil
}

func (r *registry) openStore(store config.StoreConfig) (domain.TabularStore, error) {
	switch store.Backend {
	case config.StoreSQLite:
		db, err := r.sqliteDB(store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db.ExtractTypeStore(), nil
	default:
		return parquet.NewStore(), nil
	}
}

func (r *registry) openLayouts(cfg config.Config) (domain.LayoutChecker, error) {
	lc := cfg.Layouts
	switch lc.Backend {
	case config.LayoutsSQLite:
		db, err := r.sqliteDB(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		catalog := db.LayoutCatalog()
		r.registrar = catalog
		return catalog, nil

	case config.LayoutsPostgres, config.LayoutsMySQL:
		checker, err := layouts.OpenSQLChecker(layouts.SQLConnection{
			Driver:   lc.Backend,
			Host:     lc.SQL.Host,
			Port:     lc.SQL.Port,
			User:     lc.SQL.User,
			Password: lc.SQL.Password,
			Database: lc.SQL.Database,
			SSLMode:  lc.SQL.SSLMode,
		}, lc.SQL.Table, lc.SQL.Column)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, checker.Close)
		return checker, nil

	case config.LayoutsMongoDB:
		checker, err := layouts.NewMongoChecker(layouts.MongoOptions{
			URI:        lc.Mongo.URI,
			Database:   lc.Mongo.Database,
			Collection: lc.Mongo.Collection,
			Field:      lc.Mongo.Field,
		})
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, checker.Close)
		return checker, nil

	default:
		root, err := paths.ExpandHome(lc.Root)
		if err != nil {
			return nil, err
		}
		checker := layouts.NewFilesystemChecker(root)
		r.registrar = checker
		r.fsRoot = root
		return checker, nil
	}
}

// Registrar returns the writable layout catalog, or nil when the configured
// backend is read-only.
func (r *registry) Registrar() LayoutRegistrar {
	return r.registrar
}

// Close flushes traces and releases every backend.
func (r *registry) Close() error {
	var errs []error
	r.events.Close()
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if r.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := r.tracing.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flushing traces: %w", err))
		}
	}
	return errors.Join(errs...)
}
