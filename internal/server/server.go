package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/jmylchreest/ledstripd/internal/ap"
	"github.com/jmylchreest/ledstripd/internal/config"
	lserrors "github.com/jmylchreest/ledstripd/internal/errors"
	"github.com/jmylchreest/ledstripd/internal/events"
	"github.com/jmylchreest/ledstripd/internal/http/handlers"
	"github.com/jmylchreest/ledstripd/internal/http/mw"
	"github.com/jmylchreest/ledstripd/internal/http/routes"
	"github.com/jmylchreest/ledstripd/internal/led"
	"github.com/jmylchreest/ledstripd/internal/mdns"
	"github.com/jmylchreest/ledstripd/internal/metrics"
	"github.com/jmylchreest/ledstripd/internal/mqtt"
	"github.com/jmylchreest/ledstripd/internal/static"
	"github.com/jmylchreest/ledstripd/internal/ws"
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

const apStartTimeout = 30 * time.Second

// BuildInfo is reported by the version endpoint and the mDNS TXT record.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Server manages the ledstripd daemon: the strip executor, the access point,
// the HTTP API and static files, and the optional mDNS and MQTT surfaces.
type Server struct {
	logger *slog.Logger
	cfg    *config.Config
	build  BuildInfo

	ctrl     *strip.Controller
	eventBus *events.Bus
	metrics  *metrics.Metrics
	hub      *ws.Hub
	router   chi.Router

	accessPoint ap.AccessPoint
	advertiser  *mdns.Advertiser
	bridge      *mqtt.Bridge

	listener   net.Listener
	httpServer *http.Server

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a server driving device. Nothing runs until Start.
func New(logger *slog.Logger, cfg *config.Config, device led.Device, build BuildInfo) (*Server, error) {
	accessPoint, err := ap.New(cfg.AP, logger)
	if err != nil {
		return nil, err
	}

	eventBus := events.NewBus()
	ctrl := strip.NewController(logger, device)
	ctrl.SetEventBus(eventBus)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		ctrl.SetObserver(m)
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())

	s := &Server{
		logger:      logger,
		cfg:         cfg,
		build:       build,
		ctrl:        ctrl,
		eventBus:    eventBus,
		metrics:     m,
		accessPoint: accessPoint,
		rootCtx:     rootCtx,
		rootCancel:  rootCancel,
	}
	s.hub = ws.NewHub(logger, eventBus, ws.WithSnapshot(func() any {
		return ctrl.State().Status()
	}))
	s.router = s.newRouter()

	if cfg.MQTT.Broker != "" {
		s.bridge = mqtt.NewBridge(cfg.MQTT, ctrl, logger)
	}

	return s, nil
}

func (s *Server) newRouter() chi.Router {
	router := chi.NewRouter()
	// CORS is outermost so limited and failed responses carry the headers too.
	router.Use(mw.CORS(mw.DefaultCORSConfig()))
	router.Use(mw.RequestLogging(s.logger))
	if s.metrics != nil {
		router.Use(mw.RequestMetrics(s.metrics))
	}
	router.Use(mw.RateLimitByIP(mw.RateLimitConfig{RequestsPerMinute: s.cfg.API.RateLimit}))

	api := humachi.New(router, routes.NewHumaConfig(s.build.Version, ""))

	h := &routes.Handlers{
		Strip: &handlers.StripHandler{
			Strip:  s.ctrl,
			Logger: s.logger,
			Driver: s.ctrl.Device().Name(),
			LEDs:   s.ctrl.Device().Len(),
		},
		Version: &handlers.VersionHandler{
			Version:   s.build.Version,
			Commit:    s.build.Commit,
			BuildDate: s.build.BuildDate,
		},
		Logging: &handlers.LoggingHandler{Logger: s.logger},
	}
	routes.Register(api, h)
	// Raw routes override the Huma mutations so the wire format stays
	// {"status":"ok"} / {"error":"..."}. The Huma registration above still
	// provides OpenAPI documentation.
	routes.RegisterRaw(router, h)

	router.Get("/api/v1/ws", ws.Handler(s.hub, s.logger))

	if s.metrics != nil {
		s.metrics.RegisterGaugeFunc("ws", "clients", "Connected WebSocket clients", func() float64 {
			return float64(s.hub.ClientCount())
		})
		router.Handle("/metrics", s.metrics.Handler())
	}

	// A failed mount is logged by static.New; the handler then answers 503
	// and the API keeps working.
	files, _ := static.New(s.cfg.Static.Root, s.cfg.Static.Index, s.logger)
	router.Get("/*", files.ServeHTTP)
	router.Head("/*", files.ServeHTTP)

	return router
}

// Handler returns the HTTP handler serving the API and static files.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Controller returns the strip controller.
func (s *Server) Controller() *strip.Controller {
	return s.ctrl
}

// EventBus returns the bus strip events are published on.
func (s *Server) EventBus() *events.Bus {
	return s.eventBus
}

// Start pushes the initial state, brings up the access point and starts
// serving. Only a failure to listen is fatal; access point, mDNS and MQTT
// failures are logged and the daemon carries on without them.
func (s *Server) Start() error {
	s.logger.Info("Starting ledstripd server", "version", s.build.Version)

	s.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic in strip controller", "recover", r)
			}
		}()
		s.ctrl.Run(s.rootCtx)
	})
	<-s.ctrl.Started()

	apCtx, cancel := context.WithTimeout(s.rootCtx, apStartTimeout)
	if err := s.accessPoint.Start(apCtx); err != nil {
		s.logger.Error("Failed to start access point, continuing without it", "ssid", s.cfg.AP.SSID, "error", err)
	}
	cancel()

	listener, err := net.Listen("tcp", s.cfg.API.ListenAddress)
	if err != nil {
		s.rootCancel()
		s.wg.Wait()
		return lserrors.LogErrorAndReturn(s.logger,
			fmt.Errorf("failed to listen on %s: %w", s.cfg.API.ListenAddress, err),
			"Failed to start HTTP API server", "address", s.cfg.API.ListenAddress)
	}
	s.listener = listener
	s.logger.Info("Starting HTTP API server", "address", listener.Addr().String())

	s.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic in WebSocket hub", "recover", r)
			}
		}()
		s.hub.Run(s.rootCtx)
	})

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	s.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic in HTTP server goroutine", "recover", r)
			}
		}()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", "error", err)
		}
		s.logger.Info("HTTP server stopped")
	})

	if s.cfg.MDNS.Enabled {
		s.startMDNS()
	}

	if s.bridge != nil {
		if err := s.bridge.Start(s.rootCtx, s.eventBus); err != nil {
			s.logger.Error("Failed to start MQTT bridge, continuing without it", "broker", s.cfg.MQTT.Broker, "error", err)
			s.bridge = nil
		}
	}

	return nil
}

func (s *Server) startMDNS() {
	port, err := mdns.Port(s.listener.Addr().String())
	if err != nil {
		s.logger.Warn("Not advertising over mDNS", "error", err)
		return
	}
	ssid := ""
	if s.cfg.AP.Enabled {
		ssid = s.cfg.AP.SSID
	}
	advertiser, err := mdns.Register(mdns.InstanceName(ssid), port, s.build.Version, s.logger)
	if err != nil {
		s.logger.Error("Failed to advertise over mDNS, continuing without it", "error", err)
		return
	}
	s.advertiser = advertiser
}

// Addr returns the address the HTTP server listens on, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully shuts down the server. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(s.stop)
}

func (s *Server) stop() {
	s.logger.Info("Shutting down ledstripd server")

	s.advertiser.Shutdown()
	if s.bridge != nil {
		s.bridge.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		s.logger.Info("Shutting down HTTP server")
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown failed", "error", err)
		}
	}

	// Controller and hub stop last so in-flight requests can finish.
	s.rootCancel()
	s.logger.Info("Waiting for services to stop...")
	s.wg.Wait()

	if err := s.accessPoint.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop access point", "error", err)
	}

	s.logger.Info("ledstripd server shut down gracefully")
}
