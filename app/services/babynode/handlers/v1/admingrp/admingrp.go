// Package admingrp maintains the group of handlers for inspecting the chain
// and simulating attacks against it.
package admingrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/business/web/errs"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
	"github.com/babybtc/quantlab/foundation/validate"
	"github.com/babybtc/quantlab/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of admin endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	State   *state.State
	Metrics *metrics.Metrics
}

// ChainSnapshot returns every block, player and pending transaction.
func (h Handlers) ChainSnapshot(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dump, err := h.State.ChainDump()
	if err != nil {
		return fmt.Errorf("dumping chain: %w", err)
	}

	return web.Respond(ctx, w, toChainSnapshot(dump), http.StatusOK)
}

// MutatePlayer overwrites a player's balance.
func (h Handlers) MutatePlayer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	playerID := web.Query(r, "player_id")
	if playerID == "" {
		return validate.FieldErrors{{Field: "player_id", Error: "player_id is a required field"}}
	}

	newBalance, err := web.QueryFloat(r, "new_balance")
	if err != nil {
		return err
	}

	mut, err := h.State.MutateBalance(playerID, newBalance)
	if err != nil {
		if errors.Is(err, state.ErrPlayerNotFound) {
			return errs.NewTrusted(errors.New("Player not found"), http.StatusNotFound)
		}
		return fmt.Errorf("mutating balance: %w", err)
	}

	h.Log.Infow("attack", "traceid", web.GetTraceID(ctx), "type", "balance_mutation", "player", playerID, "old", mut.OldBalance, "new", mut.NewBalance)

	resp := mutateResponse{
		Success:    true,
		PlayerID:   mut.PlayerID,
		OldBalance: mut.OldBalance,
		NewBalance: mut.NewBalance,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Rollback pops blocks off the end of the chain.
func (h Handlers) Rollback(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	n, err := web.QueryInt(r, "blocks_to_remove", 1)
	if err != nil {
		return err
	}

	removed, err := h.State.Rollback(n)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrRollbackTooFew):
			return errs.NewTrusted(errors.New("Must rollback at least 1 block"), http.StatusBadRequest)
		case errors.Is(err, state.ErrRollbackGenesis):
			return errs.NewTrusted(errors.New("Cannot rollback genesis block"), http.StatusBadRequest)
		}
		return fmt.Errorf("rolling back: %w", err)
	}

	height := h.State.RetrieveChainHeight()

	h.Metrics.Rollbacks.Inc()
	h.Metrics.ChainHeight.Set(float64(height))

	h.Log.Infow("attack", "traceid", web.GetTraceID(ctx), "type", "chain_rollback", "removed", len(removed), "height", height)

	resp := rollbackResponse{
		Success:        true,
		BlocksRemoved:  len(removed),
		NewChainHeight: height,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
