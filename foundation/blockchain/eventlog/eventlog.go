// Package eventlog builds the immutable records kept in the chain's event
// log and renders them in a readable form for players and tooling.
package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type discriminates the kind of event.
type Type string

// Set of event types.
const (
	TypeBlockMined      Type = "block_mined"
	TypeTxCreated       Type = "tx_created"
	TypeAttackMutation  Type = "attack_mutation"
	TypeSnapshotPrinted Type = "chain_snapshot_printed"
)

// Set of attack kinds carried by attack mutation events.
const (
	AttackBalanceMutation = "balance_mutation"
	AttackChainRollback   = "chain_rollback"
)

// Payload is the type specific part of an event. Every payload belongs to
// exactly one event type.
type Payload interface {
	Type() Type
	Describe() string
}

// Event is one entry of the append-only log.
type Event struct {
	ID        string    `json:"id"`
	TimeStamp time.Time `json:"timestamp"`
	Type      Type      `json:"type"`
	PlayerID  string    `json:"player_id,omitempty"`
	Payload   Payload   `json:"data"`
}

// New constructs an event for the payload.
func New(playerID string, payload Payload, now time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		TimeStamp: now,
		Type:      payload.Type(),
		PlayerID:  playerID,
		Payload:   payload,
	}
}

// Description returns the readable sentence for the event.
func (ev Event) Description() string {
	if ev.Payload == nil {
		return "System event"
	}
	return ev.Payload.Describe()
}

// String implements the fmt.Stringer interface for logging.
func (ev Event) String() string {
	return fmt.Sprintf("%s[%s]: %s", ev.Type, ev.ID[:8], ev.Description())
}

// =============================================================================

// Formatted is the readable view of an event including the raw payload.
type Formatted struct {
	ID          string  `json:"id"`
	TimeStamp   string  `json:"timestamp"`
	Type        Type    `json:"type"`
	PlayerID    *string `json:"player_id"`
	Description string  `json:"description"`
	Data        Payload `json:"data"`
}

// Format renders the event for display.
func Format(ev Event) Formatted {
	var playerID *string
	if ev.PlayerID != "" {
		id := ev.PlayerID
		playerID = &id
	}

	return Formatted{
		ID:          ev.ID,
		TimeStamp:   ev.TimeStamp.Format(time.RFC3339Nano),
		Type:        ev.Type,
		PlayerID:    playerID,
		Description: ev.Description(),
		Data:        ev.Payload,
	}
}
