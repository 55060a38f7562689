// Package client provides support for calling the node's v1 API from the
// command line tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/babybtc/quantlab/business/web/errs"
)

// Error is returned when the node responds with a failure status.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}

	fields := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		fields = append(fields, k+": "+v)
	}
	return fmt.Sprintf("%d: %s [%s]", e.Status, e.Message, strings.Join(fields, ", "))
}

// Client calls a single node.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client for the node at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// =============================================================================

// Registration is what the node returns for a new player.
type Registration struct {
	PlayerID string          `json:"player_id"`
	Address  string          `json:"address"`
	Mnemonic string          `json:"mnemonic"`
	State    json.RawMessage `json:"state"`
}

// Register creates a player with the optional name.
func (c *Client) Register(ctx context.Context, name string) (Registration, error) {
	body := struct {
		Name string `json:"name,omitempty"`
	}{
		Name: name,
	}

	var reg Registration
	if err := c.do(ctx, http.MethodPost, "/api/register", nil, body, &reg); err != nil {
		return Registration{}, err
	}

	return reg, nil
}

// MineDetails explains a single mining attempt.
type MineDetails struct {
	Formula     string `json:"formula"`
	BlockHeader string `json:"block_header"`
	HashValue   uint64 `json:"hash_value"`
	Difficulty  uint64 `json:"difficulty"`
	Equation    string `json:"equation"`
	Solved      bool   `json:"solved"`
}

// MineResult is what the node returns for a mining attempt.
type MineResult struct {
	Success    bool        `json:"success"`
	BlockIndex *uint64     `json:"block_index"`
	Reward     float64     `json:"reward"`
	Message    string      `json:"message"`
	Details    MineDetails `json:"details"`
}

// Mine submits one nonce for the player.
func (c *Client) Mine(ctx context.Context, playerID string, nonce int64) (MineResult, error) {
	body := struct {
		PlayerID string `json:"player_id"`
		Nonce    int64  `json:"nonce"`
	}{
		PlayerID: playerID,
		Nonce:    nonce,
	}

	var res MineResult
	if err := c.do(ctx, http.MethodPost, "/api/mine", nil, body, &res); err != nil {
		return MineResult{}, err
	}

	return res, nil
}

// TransferRequest describes a transfer between two players.
type TransferRequest struct {
	FromPlayerID string  `json:"from_player_id"`
	ToPlayerID   string  `json:"to_player_id"`
	Amount       float64 `json:"amount"`
	Signature    string  `json:"signature,omitempty"`
}

// Transfer is what the node returns for a queued transfer.
type Transfer struct {
	TxID        string  `json:"tx_id"`
	FromAddress string  `json:"from_address"`
	ToAddress   string  `json:"to_address"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// Transfer queues a transfer on the node.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (Transfer, error) {
	var tx Transfer
	if err := c.do(ctx, http.MethodPost, "/api/tx/transfer", nil, req, &tx); err != nil {
		return Transfer{}, err
	}

	return tx, nil
}

// Player is the player portion of a snapshot.
type Player struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Balance float64 `json:"balance_baby"`
}

// Snapshot is the game view of the chain for a player.
type Snapshot struct {
	ChainHeight int     `json:"chain_height"`
	Difficulty  uint64  `json:"current_difficulty"`
	Player      *Player `json:"player"`
}

// State returns the game snapshot for the player along with the raw document.
func (c *Client) State(ctx context.Context, playerID string) (Snapshot, json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/state/"+url.PathEscape(playerID), nil, nil, &raw); err != nil {
		return Snapshot{}, nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return snap, raw, nil
}

// =============================================================================

// ChainSnapshot returns the full chain dump.
func (c *Client) ChainSnapshot(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/admin/chain_snapshot", nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// MutatePlayer overwrites the balance of a player.
func (c *Client) MutatePlayer(ctx context.Context, playerID string, newBalance float64) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("player_id", playerID)
	q.Set("new_balance", strconv.FormatFloat(newBalance, 'f', -1, 64))

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/admin/attack/mutate_player", q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Rollback removes blocks from the end of the chain.
func (c *Client) Rollback(ctx context.Context, blocks int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("blocks_to_remove", strconv.Itoa(blocks))

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/admin/attack/rollback", q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// RecentEvents returns the most recent formatted events.
func (c *Client) RecentEvents(ctx context.Context, limit int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/ai/recent_events", q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// PlayerStats returns the analysis view of a player.
func (c *Client) PlayerStats(ctx context.Context, playerID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/ai/player_stats/"+url.PathEscape(playerID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ChainSummary returns the aggregate view of the chain.
func (c *Client) ChainSummary(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/ai/chain_summary", nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AnalyzeScenario returns the canned analysis of a scenario.
func (c *Client) AnalyzeScenario(ctx context.Context, scenario string, scnCtx map[string]any) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("scenario", scenario)

	var body any
	if scnCtx != nil {
		body = scnCtx
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/ai/analyze_scenario", q, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// =============================================================================

// do performs the call and decodes a successful response into out. Failure
// statuses are decoded into an Error.
func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &Error{Status: resp.StatusCode, Message: er.Error, Fields: er.Fields}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
