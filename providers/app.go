// Package providers wires the hub, bridge, account API, and WebSocket
// upgrade path into one runnable HTTP application.
package providers

import (
	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/roomhub/socket/config"
	"github.com/roomhub/socket/src/accounts"
	"github.com/roomhub/socket/src/auth"
	"github.com/roomhub/socket/src/bridge"
	"github.com/roomhub/socket/src/hub"
	"github.com/roomhub/socket/src/service"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// App owns the server's components and their lifecycle.
type App struct {
	cfg      *config.Config
	logger   zerolog.Logger
	hub      *hub.Hub
	service  *service.Service
	verifier auth.Verifier
	accounts *accounts.Service
	bridge   bridge.Bridge
	fiber    *fiber.App
	server   *fasthttp.Server
	upgrader websocket.FastHTTPUpgrader
}

// New builds the application: token manager, credential store, hub, and
// routes. The hub event loop is not started until Run.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	store, err := accounts.OpenStore(cfg.Accounts.DBPath)
	if err != nil {
		return nil, err
	}

	h := hub.New(logger)
	a := &App{
		cfg:      cfg,
		logger:   logger,
		hub:      h,
		service:  service.New(h, logger),
		verifier: tokens,
		accounts: accounts.NewService(store, tokens, logger),
		fiber:    fiber.New(),
		upgrader: websocket.FastHTTPUpgrader{
			ReadBufferSize:  cfg.Socket.ReadBufferSize,
			WriteBufferSize: cfg.Socket.WriteBufferSize,
		},
	}
	a.registerRoutes()
	return a, nil
}

// Service exposes the room broadcast API for embedding.
func (a *App) Service() *service.Service { return a.service }

// Run starts the hub event loop, the optional Redis bridge, and the
// HTTP server. Blocks until the listener stops.
func (a *App) Run() error {
	go a.hub.Run()
	a.initBridge()

	// Fiber v3 does not expose *fasthttp.RequestCtx, so the WebSocket
	// upgrade is registered at the fasthttp level and everything else
	// falls through to the fiber handler.
	fiberHandler := a.fiber.Handler()
	a.server = &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			if string(ctx.Path()) == "/ws" {
				a.handleWebSocket(ctx)
				return
			}
			fiberHandler(ctx)
		},
		Name: "roomhub",
	}

	a.logger.Info().Str("addr", a.cfg.Addr).Msg("server listening")
	return a.server.ListenAndServe(a.cfg.Addr)
}

// Shutdown stops the listener, the bridge, and the hub event loop.
func (a *App) Shutdown() error {
	var err error
	if a.server != nil {
		err = a.server.Shutdown()
	}
	if a.bridge != nil {
		if berr := a.bridge.Stop(); berr != nil {
			a.logger.Error().Err(berr).Msg("bridge stop error")
		}
		a.bridge = nil
	}
	a.hub.Stop()
	return err
}

// initBridge tries to start the Redis chat relay. If Redis is not
// reachable, the hub runs in standalone mode.
func (a *App) initBridge() {
	cfg := bridge.RedisConfigFromEnv()
	rb := bridge.NewRedisBridge(cfg, a.hub, a.logger)

	if err := rb.Start(); err != nil {
		a.logger.Warn().Err(err).Msg("redis bridge unavailable, running standalone")
		return
	}

	a.bridge = rb
	a.hub.SetBridge(rb)
	a.logger.Info().Str("redis_addr", cfg.Addr).Msg("redis bridge connected")
}
