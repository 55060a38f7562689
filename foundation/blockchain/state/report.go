package state

import (
	"cmp"
	"slices"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
)

// leaderboardSize is the number of entries in the summary rankings.
const leaderboardSize = 5

// ChainDump is the complete state of the chain for debugging.
type ChainDump struct {
	ChainHeight    int
	Difficulty     uint64
	RewardPerBlock float64
	Blocks         []database.Block
	Players        []database.Player
	Pending        []database.Tx
	TotalEvents    int
}

// ChainDump returns every block, player and pending transaction and logs
// that a snapshot was printed.
func (s *State) ChainDump() (ChainDump, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addEvent(eventlog.NewSnapshotPrinted(s.now()))

	blocks, err := s.allBlocks()
	if err != nil {
		return ChainDump{}, err
	}

	players := s.copyPlayers()
	slices.SortFunc(players, func(a, b database.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})

	dump := ChainDump{
		ChainHeight:    s.storage.Height(),
		Difficulty:     s.difficulty,
		RewardPerBlock: s.reward,
		Blocks:         blocks,
		Players:        players,
		Pending:        s.mempool.Copy(),
		TotalEvents:    len(s.events),
	}

	return dump, nil
}

// =============================================================================

// PlayerStats is the analysis view of a single player.
type PlayerStats struct {
	Player        database.Player
	SuccessRate   float64
	RankByBalance int
	TotalPlayers  int
}

// PlayerStats returns the player together with its mining success rate as
// a percentage and its 1-based rank by balance.
func (s *State) PlayerStats(playerID string) (PlayerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, exists := s.players[playerID]
	if !exists {
		return PlayerStats{}, ErrPlayerNotFound
	}

	var rate float64
	if player.Stats.MiningAttempts > 0 {
		rate = float64(player.Stats.BlocksMined) / float64(player.Stats.MiningAttempts) * 100
	}

	rank := 1
	for _, p := range s.players {
		if p.Balance > player.Balance {
			rank++
		}
	}

	stats := PlayerStats{
		Player:        player.Copy(),
		SuccessRate:   rate,
		RankByBalance: rank,
		TotalPlayers:  len(s.players),
	}

	return stats, nil
}

// =============================================================================

// MinerCount is the number of blocks mined under a name.
type MinerCount struct {
	Name        string
	BlocksMined int
}

// PlayerBalance is a player name with its balance.
type PlayerBalance struct {
	Name    string
	Balance float64
}

// ChainSummary is the aggregate view of the chain.
type ChainSummary struct {
	ChainHeight      int
	TotalPlayers     int
	Difficulty       uint64
	PendingTxCount   int
	TotalTxCount     int
	TotalTxVolume    float64
	AvgTxAmount      float64
	TopMiners        []MinerCount
	RichestPlayers   []PlayerBalance
	TotalMoneySupply float64
}

// ChainSummary aggregates the mining distribution, transfer volume and
// wealth ranking across the chain.
func (s *State) ChainSummary() (ChainSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.allBlocks()
	if err != nil {
		return ChainSummary{}, err
	}

	sum := ChainSummary{
		ChainHeight:    s.storage.Height(),
		TotalPlayers:   len(s.players),
		Difficulty:     s.difficulty,
		PendingTxCount: s.mempool.Count(),
	}

	counts := make(map[string]int)
	for _, block := range blocks {
		if block.Index > 0 {
			counts[s.minerName(block.MinerID)]++
		}

		for _, tx := range block.Transactions {
			if tx.IsCoinbase() {
				continue
			}
			sum.TotalTxCount++
			sum.TotalTxVolume += tx.Amount
		}
	}

	if sum.TotalTxCount > 0 {
		sum.AvgTxAmount = sum.TotalTxVolume / float64(sum.TotalTxCount)
	}

	for name, n := range counts {
		sum.TopMiners = append(sum.TopMiners, MinerCount{Name: name, BlocksMined: n})
	}
	slices.SortFunc(sum.TopMiners, func(a, b MinerCount) int {
		if c := cmp.Compare(b.BlocksMined, a.BlocksMined); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	sum.TopMiners = sum.TopMiners[:min(leaderboardSize, len(sum.TopMiners))]

	players := s.copyPlayers()
	slices.SortFunc(players, func(a, b database.Player) int {
		if c := cmp.Compare(b.Balance, a.Balance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	for _, p := range players {
		sum.TotalMoneySupply += p.Balance
	}

	for _, p := range players[:min(leaderboardSize, len(players))] {
		sum.RichestPlayers = append(sum.RichestPlayers, PlayerBalance{Name: p.DisplayName(), Balance: p.Balance})
	}

	return sum, nil
}

// =============================================================================

// allBlocks walks the chain from genesis. Must be called with the lock held.
func (s *State) allBlocks() ([]database.Block, error) {
	blocks := make([]database.Block, 0, s.storage.Height())

	iter := s.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
