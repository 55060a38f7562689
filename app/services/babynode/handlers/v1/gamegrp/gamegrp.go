// Package gamegrp maintains the group of handlers players use to register,
// mine and transfer tokens.
package gamegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/business/web/errs"
	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
	"github.com/babybtc/quantlab/foundation/validate"
	"github.com/babybtc/quantlab/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of game endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	State   *state.State
	Metrics *metrics.Metrics
}

// Register creates a new player. The mnemonic is only returned here.
func (h Handlers) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := web.Decode(r, &req); err != nil {
		return decodeError(err)
	}

	reg, err := h.State.RegisterPlayer(req.Name)
	if err != nil {
		return fmt.Errorf("registering player: %w", err)
	}

	h.Log.Infow("register", "traceid", web.GetTraceID(ctx), "player", reg.Player.ID, "name", reg.Player.Name)

	resp := registerResponse{
		PlayerID: reg.Player.ID,
		Address:  reg.Player.Address,
		Mnemonic: reg.Mnemonic,
		State:    toSnapshot(reg.Snapshot),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine evaluates a single nonce for the player. A failed attempt is not an
// error, the response carries the evaluation either way.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req mineRequest
	if err := web.Decode(r, &req); err != nil {
		return decodeError(err)
	}

	nonce := *req.Nonce
	if nonce < 0 || uint64(nonce) > h.State.MaxNonce() {
		return h.nonceError()
	}

	res, err := h.State.Mine(req.PlayerID, uint64(nonce))
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNonceOutOfRange):
			return h.nonceError()
		case errors.Is(err, state.ErrPlayerNotFound):
			return errs.NewTrusted(errors.New("Player not found"), http.StatusNotFound)
		}
		return fmt.Errorf("mining: %w", err)
	}

	h.Metrics.MiningAttempts.Inc()

	resp := mineResponse{
		Success: res.Solved,
		Details: toMineDetails(res.Attempt),
	}

	if res.Solved {
		h.Metrics.BlocksMined.Inc()
		h.Metrics.ChainHeight.Set(float64(res.Block.Index + 1))
		h.Metrics.PendingTxs.Set(float64(len(h.State.RetrievePending())))

		index := res.Block.Index
		resp.BlockIndex = &index
		resp.Reward = res.Reward
		resp.Message = fmt.Sprintf("Block #%d mined successfully! Earned %v BABY tokens.", index, res.Reward)
	} else {
		resp.Message = "Mining attempt failed. Try again with a different nonce."
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Transfer validates a transfer and queues it for the next block.
func (h Handlers) Transfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req transferRequest
	if err := web.Decode(r, &req); err != nil {
		return decodeError(err)
	}

	tx, err := h.State.Transfer(req.FromPlayerID, req.ToPlayerID, req.Amount, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrSenderNotFound):
			return errs.NewTrusted(errors.New("Sender not found"), http.StatusNotFound)
		case errors.Is(err, state.ErrReceiverNotFound):
			return errs.NewTrusted(errors.New("Receiver not found"), http.StatusNotFound)
		case errors.Is(err, database.ErrInsufficientBalance):
			return errs.NewTrusted(errors.New("Insufficient balance"), http.StatusBadRequest)
		case errors.Is(err, database.ErrNonPositiveAmount):
			return errs.NewTrusted(errors.New("Amount must be positive"), http.StatusBadRequest)
		case errors.Is(err, state.ErrInvalidSignature):
			return errs.NewTrusted(errors.New("Invalid signature"), http.StatusBadRequest)
		case errors.Is(err, database.ErrMissingSignature):
			return errs.NewTrusted(errors.New("Invalid transaction"), http.StatusBadRequest)
		}
		return fmt.Errorf("transfer: %w", err)
	}

	h.Metrics.Transfers.Inc()
	h.Metrics.PendingTxs.Set(float64(len(h.State.RetrievePending())))

	h.Log.Infow("transfer", "traceid", web.GetTraceID(ctx), "tx", tx.ID, "from", tx.From, "to", tx.To, "amount", tx.Amount)

	resp := transferResponse{
		TxID:        tx.ID,
		FromAddress: tx.From,
		ToAddress:   tx.To,
		Amount:      tx.Amount,
		Status:      "pending",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Snapshot returns the game snapshot for a player.
func (h Handlers) Snapshot(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	playerID := web.Param(r, "player_id")

	snap := h.State.Snapshot(playerID)
	if snap.Player == nil {
		return errs.NewTrusted(errors.New("Player not found"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toSnapshot(snap), http.StatusOK)
}

// =============================================================================

func (h Handlers) nonceError() error {
	return errs.NewTrusted(fmt.Errorf("Nonce must be between 0 and %d", h.State.MaxNonce()), http.StatusBadRequest)
}

// decodeError keeps field validation errors and reports a malformed body as
// a bad request.
func decodeError(err error) error {
	if validate.IsFieldErrors(err) {
		return err
	}
	return errs.NewTrusted(err, http.StatusBadRequest)
}
