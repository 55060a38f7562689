// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/babybtc/quantlab/app/services/babynode/handlers/debug/checkgrp"
	v1 "github.com/babybtc/quantlab/app/services/babynode/handlers/v1"
	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/business/web/mid"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
	"github.com/babybtc/quantlab/foundation/events"
	"github.com/babybtc/quantlab/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown    chan os.Signal
	Log         *zap.SugaredLogger
	State       *state.State
	Evts        *events.Events[eventlog.Formatted]
	Metrics     *metrics.Metrics
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
}

// APIMux constructs a http.Handler with all application routes defined.
func APIMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Metrics(cfg.Metrics),
		mid.Errors(cfg.Log, cfg.Metrics),
		mid.Cors(cfg.CORSOrigins),
		mid.RateLimit(cfg.RateLimit, cfg.RateBurst, cfg.Metrics),
		mid.Panics(cfg.Metrics),
	)

	// Accept CORS 'OPTIONS' preflight requests for every route.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
	app.HandleOptions(h)

	// Service banner and health.
	app.Handle(http.MethodGet, "", "/", banner)
	app.Handle(http.MethodGet, "", "/health", health)

	// Load the v1 routes.
	v1.Routes(app, v1.Config{
		Log:     cfg.Log,
		State:   cfg.State,
		Evts:    cfg.Evts,
		Metrics: cfg.Metrics,
		Origins: cfg.CORSOrigins,
	})

	return app
}

func banner(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Name        string `json:"name"`
		Status      string `json:"status"`
		Description string `json:"description"`
		Warning     string `json:"warning"`
	}{
		Name:        "BabyBTC Quant Lab",
		Status:      "running",
		Description: "Educational blockchain for learning purposes only",
		Warning:     "This is a toy blockchain. Do not use for real transactions!",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

func health(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Status string `json:"status"`
	}{
		Status: "healthy",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// DebugStandardLibraryMux registers all the debug routes from the standard library
// into a new mux bypassing the use of the DefaultServerMux. Using the
// DefaultServerMux would be a security risk since a dependency could inject a
// handler into our service without us knowing it.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Register all the standard library debug endpoints.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service. This bypassing the use of the
// DefaultServerMux. Using the DefaultServerMux would be a security risk since
// a dependency could inject a handler into our service without us knowing it.
func DebugMux(build string, log *zap.SugaredLogger, st *state.State, mtr *metrics.Metrics) http.Handler {
	mux := DebugStandardLibraryMux()

	// Register debug check endpoints.
	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
		State: st,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	// Expose the prometheus registry.
	mux.Handle("/metrics", mtr.Handler())

	return mux
}
