// Package aigrp maintains the group of handlers that expose the chain in a
// form suited to automated analysis.
package aigrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/babybtc/quantlab/business/core/scenario"
	"github.com/babybtc/quantlab/business/web/errs"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
	"github.com/babybtc/quantlab/foundation/validate"
	"github.com/babybtc/quantlab/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of analysis endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// RecentEvents returns the most recent events with a readable description.
func (h Handlers) RecentEvents(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	limit, err := web.QueryInt(r, "limit", 20)
	if err != nil {
		return err
	}

	events := h.State.RetrieveRecentEvents(limit)

	formatted := make([]eventlog.Formatted, len(events))
	for i, ev := range events {
		formatted[i] = eventlog.Format(ev)
	}

	resp := recentEvents{
		Events:      formatted,
		TotalEvents: h.State.RetrieveEventCount(),
		ChainHeight: h.State.RetrieveChainHeight(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// PlayerStats returns the analysis view of a single player.
func (h Handlers) PlayerStats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	stats, err := h.State.PlayerStats(web.Param(r, "player_id"))
	if err != nil {
		if errors.Is(err, state.ErrPlayerNotFound) {
			return errs.NewTrusted(errors.New("Player not found"), http.StatusNotFound)
		}
		return fmt.Errorf("player stats: %w", err)
	}

	return web.Respond(ctx, w, toPlayerStats(stats), http.StatusOK)
}

// ChainSummary returns the aggregate view of the chain.
func (h Handlers) ChainSummary(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sum, err := h.State.ChainSummary()
	if err != nil {
		return fmt.Errorf("chain summary: %w", err)
	}

	return web.Respond(ctx, w, toChainSummary(sum), http.StatusOK)
}

// AnalyzeScenario returns the canned analysis of a scenario. The optional
// body is echoed back as context.
func (h Handlers) AnalyzeScenario(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	key := web.Query(r, "scenario")
	if key == "" {
		return validate.FieldErrors{{Field: "scenario", Error: "scenario is a required field"}}
	}

	var scnCtx map[string]any
	if err := web.Decode(r, &scnCtx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	analysis, err := scenario.Lookup(key)
	if err != nil {
		return fmt.Errorf("scenario lookup: %w", err)
	}

	resp := scenarioAnalysis{
		Scenario: key,
		Analysis: analysis,
		Context:  scnCtx,
		ChainState: chainState{
			Height:     h.State.RetrieveChainHeight(),
			Difficulty: h.State.Difficulty(),
		},
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
