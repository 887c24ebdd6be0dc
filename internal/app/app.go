package app

import (
	"fmt"
	"net/http"

	"people-monitor-go/internal/config"
	"people-monitor-go/internal/db"
	eventdomain "people-monitor-go/internal/domain/event"
	"people-monitor-go/internal/domain/importer"
	"people-monitor-go/internal/domain/stats"
	userdomain "people-monitor-go/internal/domain/user"
	"people-monitor-go/internal/repository/inmemory"
	eventrepo "people-monitor-go/internal/repository/postgres/event"
	userrepo "people-monitor-go/internal/repository/postgres/user"
	"people-monitor-go/internal/transport/httpserver"
	"people-monitor-go/internal/transport/httpserver/handler"
	commonhandler "people-monitor-go/internal/transport/httpserver/handler/common"
	eventshandler "people-monitor-go/internal/transport/httpserver/handler/events"
	"people-monitor-go/pkg/logger"
	"people-monitor-go/pkg/metrics"

	"gorm.io/gorm"
)

type App struct {
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	importer   *importer.Service
}

type store struct {
	db       *gorm.DB
	events   eventdomain.Repository
	profiles userdomain.Repository
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing store", "driver", cfg.Store.Driver)
	st, err := openStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	var (
		manager       *metrics.Manager
		eventRecorder eventdomain.Recorder
		importRecord  importer.Recorder
	)
	if cfg.Metrics.Enabled {
		manager = metrics.NewManager(metrics.WithNamespace(cfg.Metrics.Namespace), metrics.WithRuntimeCollectors())
		eventRecorder = manager
		importRecord = manager
	}

	events := eventdomain.NewServiceWithRecorder(st.events, eventRecorder)
	imports := importer.NewService(events, cfg.Import.MaxRows, importRecord)
	statistics := stats.NewService(events)
	profiles := userdomain.NewServiceWithCache(st.profiles, inmemory.NewProfileCache(), cfg.Auth.ProfileTTL)

	log.Info("app: initializing router")
	handlers := handler.New(
		commonhandler.New(log),
		eventshandler.New(events, imports, statistics, cfg.Import.MaxUploadBytes, log),
	)
	router := httpserver.NewRouter(cfg, handlers, profiles, manager, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg.HTTP, router)

	return &App{
		log:        log,
		httpServer: srv,
		db:         st.db,
		importer:   imports,
	}, nil
}

func openStore(cfg config.StoreConfig, log logger.Logger) (store, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("app: using in-memory store, data is lost on exit")
		return store{
			events:   inmemory.NewEventRepository(),
			profiles: inmemory.NewProfileStore(),
		}, nil
	}

	dbConn, err := db.Open(cfg, log)
	if err != nil {
		return store{}, err
	}
	if err := db.Migrate(dbConn); err != nil {
		_ = db.Close(dbConn)
		return store{}, fmt.Errorf("migrate: %w", err)
	}

	return store{
		db:       dbConn,
		events:   eventrepo.NewPostgres(dbConn),
		profiles: userrepo.NewPostgres(dbConn),
	}, nil
}

// Migrate brings the configured SQL store up to date and closes it.
func Migrate(cfg config.StoreConfig, log logger.Logger) error {
	if cfg.Driver == config.DriverMemory {
		log.Info("migrate: memory driver has no schema")
		return nil
	}

	dbConn, err := db.Open(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(dbConn)

	if err := db.Migrate(dbConn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migrate: schema up to date", "driver", cfg.Driver)
	return nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Importer() *importer.Service {
	return a.importer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	a.log.Info("app: closing store")
	if err := db.Close(a.db); err != nil {
		a.log.InternalError("app: close store", err)
		return err
	}
	return nil
}
