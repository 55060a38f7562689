package aigrp

import (
	"time"

	"github.com/babybtc/quantlab/business/core/scenario"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
)

type recentEvents struct {
	Events      []eventlog.Formatted `json:"events"`
	TotalEvents int                  `json:"total_events"`
	ChainHeight int                  `json:"chain_height"`
}

type playerStats struct {
	PlayerID          string     `json:"player_id"`
	Name              string     `json:"name"`
	Address           string     `json:"address"`
	Balance           float64    `json:"balance"`
	BlocksMined       int        `json:"blocks_mined"`
	MiningAttempts    int        `json:"mining_attempts"`
	MiningSuccessRate float64    `json:"mining_success_rate"`
	RankByBalance     int        `json:"rank_by_balance"`
	TotalPlayers      int        `json:"total_players"`
	LastActive        *time.Time `json:"last_active"`
}

func toPlayerStats(s state.PlayerStats) playerStats {
	return playerStats{
		PlayerID:          s.Player.ID,
		Name:              s.Player.Name,
		Address:           s.Player.Address,
		Balance:           s.Player.Balance,
		BlocksMined:       s.Player.Stats.BlocksMined,
		MiningAttempts:    s.Player.Stats.MiningAttempts,
		MiningSuccessRate: s.SuccessRate,
		RankByBalance:     s.RankByBalance,
		TotalPlayers:      s.TotalPlayers,
		LastActive:        s.Player.Stats.LastActiveAt,
	}
}

type topMiner struct {
	Name        string `json:"name"`
	BlocksMined int    `json:"blocks_mined"`
}

type richPlayer struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type chainSummary struct {
	ChainHeight      int          `json:"chain_height"`
	TotalPlayers     int          `json:"total_players"`
	Difficulty       uint64       `json:"current_difficulty"`
	PendingTxCount   int          `json:"pending_tx_count"`
	TotalTxCount     int          `json:"total_tx_count"`
	TotalTxVolume    float64      `json:"total_tx_volume"`
	AvgTxAmount      float64      `json:"avg_tx_amount"`
	TopMiners        []topMiner   `json:"top_miners"`
	RichestPlayers   []richPlayer `json:"richest_players"`
	TotalMoneySupply float64      `json:"total_money_supply"`
}

func toChainSummary(s state.ChainSummary) chainSummary {
	miners := make([]topMiner, len(s.TopMiners))
	for i, m := range s.TopMiners {
		miners[i] = topMiner{Name: m.Name, BlocksMined: m.BlocksMined}
	}

	rich := make([]richPlayer, len(s.RichestPlayers))
	for i, p := range s.RichestPlayers {
		rich[i] = richPlayer{Name: p.Name, Balance: p.Balance}
	}

	return chainSummary{
		ChainHeight:      s.ChainHeight,
		TotalPlayers:     s.TotalPlayers,
		Difficulty:       s.Difficulty,
		PendingTxCount:   s.PendingTxCount,
		TotalTxCount:     s.TotalTxCount,
		TotalTxVolume:    s.TotalTxVolume,
		AvgTxAmount:      s.AvgTxAmount,
		TopMiners:        miners,
		RichestPlayers:   rich,
		TotalMoneySupply: s.TotalMoneySupply,
	}
}

type chainState struct {
	Height     int    `json:"height"`
	Difficulty uint64 `json:"difficulty"`
}

type scenarioAnalysis struct {
	Scenario   string            `json:"scenario"`
	Analysis   scenario.Analysis `json:"analysis"`
	Context    map[string]any    `json:"context"`
	ChainState chainState        `json:"chain_state"`
}
