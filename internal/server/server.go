package server

import (
	"context"
	"log/slog"
	"net/http"

	appgames "github.com/preston-bernstein/gridiron-sim/internal/app/games"
	"github.com/preston-bernstein/gridiron-sim/internal/app/simulations"
	appteams "github.com/preston-bernstein/gridiron-sim/internal/app/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/config"
	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/driver"
	httpserver "github.com/preston-bernstein/gridiron-sim/internal/http"
	"github.com/preston-bernstein/gridiron-sim/internal/http/handlers"
	"github.com/preston-bernstein/gridiron-sim/internal/http/middleware"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
	"github.com/preston-bernstein/gridiron-sim/internal/metrics"
	"github.com/preston-bernstein/gridiron-sim/internal/poller"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
	"github.com/preston-bernstein/gridiron-sim/internal/store"
	"github.com/preston-bernstein/gridiron-sim/internal/stream"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	gamesService  *appgames.Service
	teamsService  *appteams.Service
	simulations   Simulations
	hub           Closer
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.TeamProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.TeamProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}
	memoryStore, gameSvc, teamSvc := buildServices(cfg)
	plr := poller.New(provider, teamSvc, logger, recorder, cfg.Roster.PollInterval)
	hub := stream.NewHub(gameSvc, logger)
	sims := buildSimulations(cfg, teamSvc, provider, driver.Fanout{gameSvc, hub}, logger, recorder)
	httpSrv := buildHTTPServer(cfg, gameSvc, teamSvc, sims, hub, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		gamesService:  gameSvc,
		teamsService:  teamSvc,
		simulations:   sims,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller, sims Simulations) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		simulations: sims,
		httpServer:  httpSrv,
		poller:      plr,
	}
}

func buildServices(cfg config.Config) (*store.MemoryStore, *appgames.Service, *appteams.Service) {
	memoryStore := store.NewMemoryStore(cfg.Simulation.MaxRetainedGames)
	return memoryStore, appgames.NewService(memoryStore), appteams.NewService(memoryStore)
}

func buildSimulations(cfg config.Config, catalog simulations.Catalog, provider providers.TeamProvider, publisher driver.Publisher, logger *slog.Logger, recorder *metrics.Recorder) *simulations.Service {
	sim := cfg.Simulation
	return simulations.NewService(catalog, provider, publisher, logger, recorder, simulations.Config{
		TickInterval:   sim.TickInterval,
		ClockStep:      sim.ClockStep,
		CoinTossDelay:  sim.CoinTossDelay,
		DefaultProfile: sim.EventProfile,
		MaxActiveGames: sim.MaxActiveGames,
		Limits: games.Limits{
			Commentary: sim.CommentaryLimit,
			Events:     sim.EventLimit,
			Injuries:   sim.InjuryLimit,
		},
	})
}

func buildHTTPServer(cfg config.Config, gameSvc *appgames.Service, teamSvc *appteams.Service, sims *simulations.Service, hub *stream.Hub, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(gameSvc, teamSvc, sims, hub, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" && plr != nil {
		admin = handlers.NewAdminHandler(plr, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops the roster poller, finishes running games so their
// last snapshots reach subscribers, disconnects streams, then drains HTTP and
// flushes telemetry.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if s.simulations != nil {
		active := s.simulations.Active()
		if err := s.simulations.StopAll(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop simulations", err, slog.Int(logging.FieldCount, active))
		}
	}

	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("err", err))
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("err", err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("err", err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any("err", err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
