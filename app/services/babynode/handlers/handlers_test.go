package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/babybtc/quantlab/app/services/babynode/handlers"
	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/foundation/blockchain/digest"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
	"github.com/babybtc/quantlab/foundation/events"
	"github.com/babybtc/quantlab/foundation/logger"
	"github.com/gorilla/websocket"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const origin = "http://localhost:5173"

type node struct {
	mux  http.Handler
	st   *state.State
	evts *events.Events[eventlog.Formatted]
}

// newNode constructs the api where every nonce solves the puzzle.
func newNode(t *testing.T, rateLimit float64, burst int) node {
	log, err := logger.New("TEST")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a logger: %v", failed, err)
	}
	t.Cleanup(func() { log.Sync() })

	evts := events.New[eventlog.Formatted]()
	t.Cleanup(evts.Shutdown)

	st, err := state.New(state.Config{
		InitialDifficulty: digest.HashModulo,
		EvHandler: func(v string, args ...any) {
			log.Infof(v, args...)
		},
		EvSink: func(ev eventlog.Event) {
			evts.Send(eventlog.Format(ev))
		},
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	mux := handlers.APIMux(handlers.MuxConfig{
		Shutdown:    make(chan os.Signal, 1),
		Log:         log,
		State:       st,
		Evts:        evts,
		Metrics:     metrics.New(),
		CORSOrigins: []string{origin},
		RateLimit:   rateLimit,
		RateBurst:   burst,
	})

	return node{mux: mux, st: st, evts: evts}
}

func (n node) do(method string, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Origin", origin)

	w := httptest.NewRecorder()
	n.mux.ServeHTTP(w, r)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("\t%s\tShould be able to decode the response: %v", failed, err)
	}
}

func (n node) register(t *testing.T, name string) string {
	w := n.do(http.MethodPost, "/api/register", `{"name":"`+name+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("\t%s\tShould be able to register %q: %d %s", failed, name, w.Code, w.Body.String())
	}

	var resp struct {
		PlayerID string `json:"player_id"`
	}
	decode(t, w, &resp)

	return resp.PlayerID
}

// =============================================================================

func Test_Banner(t *testing.T) {
	t.Log("Given the need to check the service is up.")
	{
		n := newNode(t, 0, 0)

		tests := []struct {
			name string
			path string
			key  string
			want string
		}{
			{"banner", "/", "status", "running"},
			{"health", "/health", "status", "healthy"},
		}

		for testID, tt := range tests {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen calling %s.", testID, tt.path)
				{
					w := n.do(http.MethodGet, tt.path, "")
					if w.Code != http.StatusOK {
						t.Fatalf("\t%s\tTest %d:\tShould receive a 200, got %d.", failed, testID, w.Code)
					}
					t.Logf("\t%s\tTest %d:\tShould receive a 200.", success, testID)

					var resp map[string]string
					decode(t, w, &resp)

					if resp[tt.key] != tt.want {
						t.Fatalf("\t%s\tTest %d:\tShould report %s=%s, got %q.", failed, testID, tt.key, tt.want, resp[tt.key])
					}
					t.Logf("\t%s\tTest %d:\tShould report %s=%s.", success, testID, tt.key, tt.want)
				}
			}

			t.Run(tt.name, f)
		}
	}
}

func Test_RegisterMineState(t *testing.T) {
	t.Log("Given the need to play the mining game over the api.")
	{
		n := newNode(t, 0, 0)

		t.Log("\tWhen registering a player.")
		{
			w := n.do(http.MethodPost, "/api/register", `{"name":"Alice"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d: %s", failed, w.Code, w.Body.String())
			}

			var resp struct {
				PlayerID string `json:"player_id"`
				Address  string `json:"address"`
				Mnemonic string `json:"mnemonic"`
				State    struct {
					ChainHeight int `json:"chain_height"`
					Player      struct {
						Name    string  `json:"name"`
						Balance float64 `json:"balance_baby"`
					} `json:"player"`
				} `json:"state"`
			}
			decode(t, w, &resp)

			if len(resp.PlayerID) != 8 || !strings.HasPrefix(resp.Address, "BABY") || len(strings.Fields(resp.Mnemonic)) != 12 {
				t.Fatalf("\t%s\tShould return the player credentials: %+v", failed, resp)
			}
			t.Logf("\t%s\tShould return the player credentials.", success)

			if resp.State.ChainHeight != 1 || resp.State.Player.Name != "Alice" || resp.State.Player.Balance != 100 {
				t.Fatalf("\t%s\tShould return the initial snapshot: %+v", failed, resp.State)
			}
			t.Logf("\t%s\tShould return the initial snapshot.", success)

			t.Log("\tWhen mining a block.")
			{
				w := n.do(http.MethodPost, "/api/mine", `{"player_id":"`+resp.PlayerID+`","nonce":42}`)
				if w.Code != http.StatusOK {
					t.Fatalf("\t%s\tShould receive a 200, got %d: %s", failed, w.Code, w.Body.String())
				}

				var mine struct {
					Success    bool    `json:"success"`
					BlockIndex *uint64 `json:"block_index"`
					Reward     float64 `json:"reward"`
					Message    string  `json:"message"`
					Details    struct {
						Formula    string `json:"formula"`
						Solved     bool   `json:"solved"`
						Components struct {
							Nonce uint64 `json:"nonce"`
						} `json:"components"`
					} `json:"details"`
				}
				decode(t, w, &mine)

				if !mine.Success || mine.BlockIndex == nil || *mine.BlockIndex != 1 || mine.Reward != 10 {
					t.Fatalf("\t%s\tShould mine block #1: %+v", failed, mine)
				}
				t.Logf("\t%s\tShould mine block #1.", success)

				if mine.Message != "Block #1 mined successfully! Earned 10 BABY tokens." {
					t.Fatalf("\t%s\tShould report the reward, got %q.", failed, mine.Message)
				}
				t.Logf("\t%s\tShould report the reward.", success)

				if !mine.Details.Solved || mine.Details.Components.Nonce != 42 || mine.Details.Formula == "" {
					t.Fatalf("\t%s\tShould explain the attempt: %+v", failed, mine.Details)
				}
				t.Logf("\t%s\tShould explain the attempt.", success)
			}

			t.Log("\tWhen reading the player state.")
			{
				w := n.do(http.MethodGet, "/api/state/"+resp.PlayerID, "")
				if w.Code != http.StatusOK {
					t.Fatalf("\t%s\tShould receive a 200, got %d.", failed, w.Code)
				}

				var snap struct {
					ChainHeight  int `json:"chain_height"`
					RecentBlocks []struct {
						MinerName string `json:"miner_name"`
					} `json:"recent_blocks"`
					Player struct {
						Balance float64 `json:"balance_baby"`
						Stats   struct {
							BlocksMined int `json:"blocks_mined"`
						} `json:"stats"`
					} `json:"player"`
				}
				decode(t, w, &snap)

				if snap.ChainHeight != 2 || snap.Player.Balance != 110 || snap.Player.Stats.BlocksMined != 1 {
					t.Fatalf("\t%s\tShould reflect the mined block: %+v", failed, snap)
				}
				t.Logf("\t%s\tShould reflect the mined block.", success)

				if len(snap.RecentBlocks) != 2 || snap.RecentBlocks[0].MinerName != "Alice" {
					t.Fatalf("\t%s\tShould list the recent blocks: %+v", failed, snap.RecentBlocks)
				}
				t.Logf("\t%s\tShould list the recent blocks.", success)
			}

			t.Log("\tWhen registering with fields the api does not know.")
			{
				w := n.do(http.MethodPost, "/api/register", `{"name":"Carol","avatar":"cat"}`)
				if w.Code != http.StatusOK {
					t.Fatalf("\t%s\tShould ignore the unknown fields, got %d: %s", failed, w.Code, w.Body.String())
				}
				t.Logf("\t%s\tShould ignore the unknown fields.", success)
			}
		}
	}
}

func Test_Errors(t *testing.T) {
	t.Log("Given the need to report client errors.")
	{
		n := newNode(t, 0, 0)
		alice := n.register(t, "Alice")
		bob := n.register(t, "Bob")

		tests := []struct {
			name   string
			method string
			path   string
			body   string
			status int
			msg    string
		}{
			{"unknown", http.MethodGet, "/api/state/nobody", "", http.StatusNotFound, "Player not found"},
			{"stats", http.MethodGet, "/api/ai/player_stats/nobody", "", http.StatusNotFound, "Player not found"},
			{"noncehigh", http.MethodPost, "/api/mine", `{"player_id":"` + alice + `","nonce":10000}`, http.StatusBadRequest, "Nonce must be between 0 and 9999"},
			{"noncelow", http.MethodPost, "/api/mine", `{"player_id":"` + alice + `","nonce":-1}`, http.StatusBadRequest, "Nonce must be between 0 and 9999"},
			{"noncemissing", http.MethodPost, "/api/mine", `{"player_id":"` + alice + `"}`, http.StatusBadRequest, "data validation error"},
			{"miner", http.MethodPost, "/api/mine", `{"player_id":"nobody","nonce":1}`, http.StatusNotFound, "Player not found"},
			{"sender", http.MethodPost, "/api/tx/transfer", `{"from_player_id":"nobody","to_player_id":"` + bob + `","amount":1,"signature":"demo_signature"}`, http.StatusNotFound, "Sender not found"},
			{"receiver", http.MethodPost, "/api/tx/transfer", `{"from_player_id":"` + alice + `","to_player_id":"nobody","amount":1,"signature":"demo_signature"}`, http.StatusNotFound, "Receiver not found"},
			{"balance", http.MethodPost, "/api/tx/transfer", `{"from_player_id":"` + alice + `","to_player_id":"` + bob + `","amount":500,"signature":"demo_signature"}`, http.StatusBadRequest, "Insufficient balance"},
			{"amount", http.MethodPost, "/api/tx/transfer", `{"from_player_id":"` + alice + `","to_player_id":"` + bob + `","amount":0,"signature":"demo_signature"}`, http.StatusBadRequest, "Amount must be positive"},
			{"malformed", http.MethodPost, "/api/register", `{"name":`, http.StatusBadRequest, ""},
			{"rollback", http.MethodPost, "/api/admin/attack/rollback?blocks_to_remove=1", "", http.StatusBadRequest, "Cannot rollback genesis block"},
			{"rollbackzero", http.MethodPost, "/api/admin/attack/rollback?blocks_to_remove=0", "", http.StatusBadRequest, "Must rollback at least 1 block"},
			{"mutate", http.MethodPost, "/api/admin/attack/mutate_player?player_id=nobody&new_balance=5", "", http.StatusNotFound, "Player not found"},
			{"scenario", http.MethodPost, "/api/ai/analyze_scenario", "", http.StatusBadRequest, "data validation error"},
		}

		for testID, tt := range tests {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen calling %s %s.", testID, tt.method, tt.path)
				{
					w := n.do(tt.method, tt.path, tt.body)
					if w.Code != tt.status {
						t.Fatalf("\t%s\tTest %d:\tShould receive a %d, got %d: %s", failed, testID, tt.status, w.Code, w.Body.String())
					}
					t.Logf("\t%s\tTest %d:\tShould receive a %d.", success, testID, tt.status)

					var resp struct {
						Error string `json:"error"`
					}
					decode(t, w, &resp)

					if tt.msg != "" && resp.Error != tt.msg {
						t.Fatalf("\t%s\tTest %d:\tShould report %q, got %q.", failed, testID, tt.msg, resp.Error)
					}
					t.Logf("\t%s\tTest %d:\tShould report the error.", success, testID)
				}
			}

			t.Run(tt.name, f)
		}
	}
}

func Test_TransferAndAttacks(t *testing.T) {
	t.Log("Given the need to transfer tokens and simulate attacks.")
	{
		n := newNode(t, 0, 0)
		alice := n.register(t, "Alice")
		bob := n.register(t, "Bob")

		t.Log("\tWhen alice sends bob 25 tokens.")
		{
			w := n.do(http.MethodPost, "/api/tx/transfer", `{"from_player_id":"`+alice+`","to_player_id":"`+bob+`","amount":25,"signature":"demo_signature"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d: %s", failed, w.Code, w.Body.String())
			}

			var tx struct {
				TxID   string  `json:"tx_id"`
				Amount float64 `json:"amount"`
				Status string  `json:"status"`
			}
			decode(t, w, &tx)

			if tx.TxID == "" || tx.Amount != 25 || tx.Status != "pending" {
				t.Fatalf("\t%s\tShould queue the transfer: %+v", failed, tx)
			}
			t.Logf("\t%s\tShould queue the transfer.", success)

			if w := n.do(http.MethodPost, "/api/mine", `{"player_id":"`+bob+`","nonce":7}`); w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould be able to mine the transfer: %d", failed, w.Code)
			}

			w = n.do(http.MethodGet, "/api/admin/chain_snapshot", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d.", failed, w.Code)
			}

			var dump struct {
				ChainHeight int `json:"chain_height"`
				Blocks      []struct {
					Transactions []struct {
						From *string `json:"from"`
						Memo string  `json:"memo"`
					} `json:"transactions"`
				} `json:"blocks"`
				Players map[string]struct {
					Balance float64 `json:"balance"`
				} `json:"players"`
				Pending []any `json:"pending_transactions"`
			}
			decode(t, w, &dump)

			if dump.ChainHeight != 2 || len(dump.Blocks[1].Transactions) != 2 || len(dump.Pending) != 0 {
				t.Fatalf("\t%s\tShould include the coinbase and transfer in block #1: %+v", failed, dump)
			}
			t.Logf("\t%s\tShould include the coinbase and transfer in block #1.", success)

			if dump.Blocks[1].Transactions[0].From != nil {
				t.Fatalf("\t%s\tShould report the coinbase sender as null.", failed)
			}
			t.Logf("\t%s\tShould report the coinbase sender as null.", success)

			if dump.Players[alice].Balance != 75 || dump.Players[bob].Balance != 135 {
				t.Fatalf("\t%s\tShould settle the balances: %+v", failed, dump.Players)
			}
			t.Logf("\t%s\tShould settle the balances.", success)
		}

		t.Log("\tWhen mutating a balance and rolling back.")
		{
			w := n.do(http.MethodPost, "/api/admin/attack/mutate_player?player_id="+alice+"&new_balance=1000", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d: %s", failed, w.Code, w.Body.String())
			}

			var mut struct {
				Success    bool    `json:"success"`
				OldBalance float64 `json:"old_balance"`
				NewBalance float64 `json:"new_balance"`
			}
			decode(t, w, &mut)

			if !mut.Success || mut.OldBalance != 75 || mut.NewBalance != 1000 {
				t.Fatalf("\t%s\tShould overwrite the balance: %+v", failed, mut)
			}
			t.Logf("\t%s\tShould overwrite the balance.", success)

			w = n.do(http.MethodPost, "/api/admin/attack/rollback", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d: %s", failed, w.Code, w.Body.String())
			}

			var rb struct {
				BlocksRemoved  int `json:"blocks_removed"`
				NewChainHeight int `json:"new_chain_height"`
			}
			decode(t, w, &rb)

			if rb.BlocksRemoved != 1 || rb.NewChainHeight != 1 {
				t.Fatalf("\t%s\tShould remove one block by default: %+v", failed, rb)
			}
			t.Logf("\t%s\tShould remove one block by default.", success)
		}

		t.Log("\tWhen reading the recent events.")
		{
			w := n.do(http.MethodGet, "/api/ai/recent_events?limit=2", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d.", failed, w.Code)
			}

			var resp struct {
				Events []struct {
					Type        string `json:"type"`
					Description string `json:"description"`
				} `json:"events"`
				TotalEvents int `json:"total_events"`
			}
			decode(t, w, &resp)

			if len(resp.Events) != 2 || resp.TotalEvents < 5 {
				t.Fatalf("\t%s\tShould limit the events: %+v", failed, resp)
			}
			t.Logf("\t%s\tShould limit the events.", success)

			if resp.Events[0].Type != string(eventlog.TypeAttackMutation) || resp.Events[0].Description != "Attack simulation: chain_rollback on blockchain" {
				t.Fatalf("\t%s\tShould list the rollback first: %+v", failed, resp.Events[0])
			}
			t.Logf("\t%s\tShould list the rollback first.", success)
		}
	}
}

func Test_Analysis(t *testing.T) {
	t.Log("Given the need to analyze the chain.")
	{
		n := newNode(t, 0, 0)
		alice := n.register(t, "Alice")
		n.register(t, "Bob")

		if w := n.do(http.MethodPost, "/api/mine", `{"player_id":"`+alice+`","nonce":1}`); w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould be able to mine: %d", failed, w.Code)
		}

		t.Log("\tWhen asking for player stats.")
		{
			w := n.do(http.MethodGet, "/api/ai/player_stats/"+alice, "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d.", failed, w.Code)
			}

			var stats struct {
				Balance           float64 `json:"balance"`
				MiningSuccessRate float64 `json:"mining_success_rate"`
				RankByBalance     int     `json:"rank_by_balance"`
				TotalPlayers      int     `json:"total_players"`
			}
			decode(t, w, &stats)

			if stats.Balance != 110 || stats.MiningSuccessRate != 100 || stats.RankByBalance != 1 || stats.TotalPlayers != 2 {
				t.Fatalf("\t%s\tShould rank the miner first: %+v", failed, stats)
			}
			t.Logf("\t%s\tShould rank the miner first.", success)
		}

		t.Log("\tWhen asking for the chain summary.")
		{
			w := n.do(http.MethodGet, "/api/ai/chain_summary", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d.", failed, w.Code)
			}

			var sum struct {
				ChainHeight      int     `json:"chain_height"`
				TotalPlayers     int     `json:"total_players"`
				TotalMoneySupply float64 `json:"total_money_supply"`
				TopMiners        []struct {
					Name string `json:"name"`
				} `json:"top_miners"`
			}
			decode(t, w, &sum)

			if sum.ChainHeight != 2 || sum.TotalPlayers != 2 || sum.TotalMoneySupply != 210 {
				t.Fatalf("\t%s\tShould total the chain: %+v", failed, sum)
			}
			t.Logf("\t%s\tShould total the chain.", success)

			if len(sum.TopMiners) != 1 || sum.TopMiners[0].Name != "Alice" {
				t.Fatalf("\t%s\tShould list the top miners: %+v", failed, sum.TopMiners)
			}
			t.Logf("\t%s\tShould list the top miners.", success)
		}

		t.Log("\tWhen analyzing a scenario.")
		{
			w := n.do(http.MethodPost, "/api/ai/analyze_scenario?scenario=double_spend", `{"attacker":"bob"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d: %s", failed, w.Code, w.Body.String())
			}

			var resp struct {
				Scenario string `json:"scenario"`
				Analysis struct {
					RiskLevel string `json:"risk_level"`
				} `json:"analysis"`
				Context    map[string]any `json:"context"`
				ChainState struct {
					Height int `json:"height"`
				} `json:"chain_state"`
			}
			decode(t, w, &resp)

			if resp.Analysis.RiskLevel != "high" || resp.Context["attacker"] != "bob" || resp.ChainState.Height != 2 {
				t.Fatalf("\t%s\tShould return the canned analysis: %+v", failed, resp)
			}
			t.Logf("\t%s\tShould return the canned analysis.", success)

			w = n.do(http.MethodPost, "/api/ai/analyze_scenario?scenario=unknown", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200 for an unknown scenario, got %d.", failed, w.Code)
			}
			decode(t, w, &resp)

			if resp.Analysis.RiskLevel != "unknown" {
				t.Fatalf("\t%s\tShould fall back for an unknown scenario: %+v", failed, resp.Analysis)
			}
			t.Logf("\t%s\tShould fall back for an unknown scenario.", success)
		}
	}
}

func Test_MutateNonFinite(t *testing.T) {
	t.Log("Given the need to keep balances encodable.")
	{
		n := newNode(t, 0, 0)
		alice := n.register(t, "Alice")

		tests := []struct {
			name  string
			value string
		}{
			{"nan", "NaN"},
			{"inf", "Inf"},
			{"posinf", "%2BInf"},
			{"neginf", "-Inf"},
		}

		for testID, tt := range tests {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen setting the balance to %s.", testID, tt.value)
				{
					w := n.do(http.MethodPost, "/api/admin/attack/mutate_player?player_id="+alice+"&new_balance="+tt.value, "")
					if w.Code != http.StatusBadRequest {
						t.Fatalf("\t%s\tTest %d:\tShould receive a 400, got %d: %s", failed, testID, w.Code, w.Body.String())
					}
					t.Logf("\t%s\tTest %d:\tShould receive a 400.", success, testID)

					var resp struct {
						Error  string            `json:"error"`
						Fields map[string]string `json:"fields"`
					}
					decode(t, w, &resp)

					if resp.Fields["new_balance"] != "new_balance must be a finite number" {
						t.Fatalf("\t%s\tTest %d:\tShould name the field: %+v", failed, testID, resp)
					}
					t.Logf("\t%s\tTest %d:\tShould name the field.", success, testID)
				}
			}

			t.Run(tt.name, f)
		}

		t.Log("\tWhen reading the chain after the rejected mutations.")
		{
			paths := []string{
				"/api/state/" + alice,
				"/api/admin/chain_snapshot",
				"/api/ai/chain_summary",
				"/api/ai/player_stats/" + alice,
				"/api/ai/recent_events",
			}

			for _, path := range paths {
				if w := n.do(http.MethodGet, path, ""); w.Code != http.StatusOK {
					t.Fatalf("\t%s\tShould serve %s, got %d: %s", failed, path, w.Code, w.Body.String())
				}
			}
			t.Logf("\t%s\tShould keep serving the read routes.", success)

			if bal := n.st.QueryPlayers()[0].Balance; bal != 100 {
				t.Fatalf("\t%s\tShould leave the balance untouched, got %v.", failed, bal)
			}
			t.Logf("\t%s\tShould leave the balance untouched.", success)
		}
	}
}

func Test_CORSAndRateLimit(t *testing.T) {
	t.Log("Given the need to serve browsers within a request budget.")
	{
		n := newNode(t, 1, 2)

		t.Log("\tWhen sending a preflight request.")
		{
			w := n.do(http.MethodOptions, "/api/mine", "")
			if w.Code != http.StatusNoContent {
				t.Fatalf("\t%s\tShould receive a 204, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tShould receive a 204.", success)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Fatalf("\t%s\tShould echo the allowed origin, got %q.", failed, got)
			}
			t.Logf("\t%s\tShould echo the allowed origin.", success)
		}

		t.Log("\tWhen exceeding the burst.")
		{
			w := n.do(http.MethodGet, "/health", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould allow the burst, got %d.", failed, w.Code)
			}

			w = n.do(http.MethodGet, "/health", "")
			if w.Code != http.StatusTooManyRequests {
				t.Fatalf("\t%s\tShould receive a 429, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tShould receive a 429.", success)
		}
	}
}

func Test_EventStream(t *testing.T) {
	t.Log("Given the need to stream events to connected clients.")
	{
		n := newNode(t, 0, 0)
		alice := n.register(t, "Alice")
		bob := n.register(t, "Bob")

		srv := httptest.NewServer(n.mux)
		defer srv.Close()

		t.Log("\tWhen a client connects to the event stream.")
		{
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"

			hdr := http.Header{}
			hdr.Set("Origin", origin)

			conn, _, err := websocket.DefaultDialer.Dial(url, hdr)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to connect: %v", failed, err)
			}
			defer conn.Close()
			t.Logf("\t%s\tShould be able to connect.", success)

			deadline := time.Now().Add(5 * time.Second)
			for n.evts.Count() == 0 {
				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tShould register the client.", failed)
				}
				time.Sleep(10 * time.Millisecond)
			}

			w := n.do(http.MethodPost, "/api/tx/transfer", `{"from_player_id":"`+alice+`","to_player_id":"`+bob+`","amount":5}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould be able to transfer: %d %s", failed, w.Code, w.Body.String())
			}

			conn.SetReadDeadline(time.Now().Add(5 * time.Second))

			var ev struct {
				Type        string `json:"type"`
				PlayerID    string `json:"player_id"`
				Description string `json:"description"`
			}
			if err := conn.ReadJSON(&ev); err != nil {
				t.Fatalf("\t%s\tShould receive the event: %v", failed, err)
			}

			if ev.Type != string(eventlog.TypeTxCreated) || ev.PlayerID != alice || ev.Description != "Alice sent 5 BABY to Bob" {
				t.Fatalf("\t%s\tShould receive the transfer event: %+v", failed, ev)
			}
			t.Logf("\t%s\tShould receive the transfer event.", success)
		}

		t.Log("\tWhen a client connects from a foreign origin.")
		{
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"

			hdr := http.Header{}
			hdr.Set("Origin", "http://evil.example")

			if _, _, err := websocket.DefaultDialer.Dial(url, hdr); err == nil {
				t.Fatalf("\t%s\tShould reject the connection.", failed)
			}
			t.Logf("\t%s\tShould reject the connection.", success)
		}

		t.Log("\tWhen a plain http request hits the event stream.")
		{
			w := n.do(http.MethodGet, "/api/events", "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tShould receive a 400, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tShould receive a 400.", success)

			if strings.Contains(w.Body.String(), `"error"`) {
				t.Fatalf("\t%s\tShould respond only once: %q", failed, w.Body.String())
			}
			t.Logf("\t%s\tShould respond only once.", success)
		}
	}
}
