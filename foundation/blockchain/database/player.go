package database

import "time"

// PlayerStats tracks the mining activity of a player.
type PlayerStats struct {
	BlocksMined    int        `json:"blocks_mined"`
	MiningAttempts int        `json:"mining_attempts"`
	LastActiveAt   *time.Time `json:"last_active_at"`
}

// Player represents a participant in the game. The SignerAccount is only
// used when strict signature verification is turned on.
type Player struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	PublicKey     string      `json:"public_key"`
	SignerAccount string      `json:"signer_account"`
	Balance       float64     `json:"balance_baby"`
	Stats         PlayerStats `json:"stats"`
}

// Copy returns a deep copy of the player so callers can't mutate the
// stored value through the stats pointer.
func (p Player) Copy() Player {
	if p.Stats.LastActiveAt != nil {
		t := *p.Stats.LastActiveAt
		p.Stats.LastActiveAt = &t
	}
	return p
}

// DisplayName returns the player name or a name generated from the id.
func (p Player) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return DefaultName(p.ID)
}

// DefaultName generates the name given to players who register without one.
func DefaultName(id string) string {
	if len(id) > 4 {
		id = id[:4]
	}
	return "miner-" + id
}
