// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/babybtc/quantlab/app/services/babynode/handlers/v1/admingrp"
	"github.com/babybtc/quantlab/app/services/babynode/handlers/v1/aigrp"
	"github.com/babybtc/quantlab/app/services/babynode/handlers/v1/eventgrp"
	"github.com/babybtc/quantlab/app/services/babynode/handlers/v1/gamegrp"
	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
	"github.com/babybtc/quantlab/foundation/events"
	"github.com/babybtc/quantlab/foundation/web"
	"go.uber.org/zap"
)

const group = "api"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log     *zap.SugaredLogger
	State   *state.State
	Evts    *events.Events[eventlog.Formatted]
	Metrics *metrics.Metrics
	Origins []string
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	gme := gamegrp.Handlers{
		Log:     cfg.Log,
		State:   cfg.State,
		Metrics: cfg.Metrics,
	}

	app.Handle(http.MethodPost, group, "/register", gme.Register)
	app.Handle(http.MethodPost, group, "/mine", gme.Mine)
	app.Handle(http.MethodPost, group, "/tx/transfer", gme.Transfer)
	app.Handle(http.MethodGet, group, "/state/:player_id", gme.Snapshot)

	adm := admingrp.Handlers{
		Log:     cfg.Log,
		State:   cfg.State,
		Metrics: cfg.Metrics,
	}

	app.Handle(http.MethodGet, group, "/admin/chain_snapshot", adm.ChainSnapshot)
	app.Handle(http.MethodPost, group, "/admin/attack/mutate_player", adm.MutatePlayer)
	app.Handle(http.MethodPost, group, "/admin/attack/rollback", adm.Rollback)

	ai := aigrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, group, "/ai/recent_events", ai.RecentEvents)
	app.Handle(http.MethodGet, group, "/ai/player_stats/:player_id", ai.PlayerStats)
	app.Handle(http.MethodGet, group, "/ai/chain_summary", ai.ChainSummary)
	app.Handle(http.MethodPost, group, "/ai/analyze_scenario", ai.AnalyzeScenario)

	evt := eventgrp.Handlers{
		Log:     cfg.Log,
		Evts:    cfg.Evts,
		Metrics: cfg.Metrics,
		Origins: cfg.Origins,
	}

	app.Handle(http.MethodGet, group, "/events", evt.Events)
}
