// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"errors"
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/credential"
	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/digest"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/blockchain/mempool"
	"github.com/babybtc/quantlab/foundation/blockchain/mempool/selector"
	"github.com/babybtc/quantlab/foundation/blockchain/storage"
	"github.com/babybtc/quantlab/foundation/blockchain/storage/memory"
	"github.com/sasha-s/go-deadlock"
)

// Default values used when the configuration leaves a setting empty.
const (
	DefaultInitialDifficulty uint64  = 400_000
	DefaultRewardPerBlock    float64 = 10
	DefaultInitialBalance    float64 = 100
	DefaultMaxNonce          uint64  = 9999
)

// Set of errors returned by the state.
var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrSenderNotFound   = errors.New("sender not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrDuplicatePlayer  = errors.New("player already exists")
	ErrNonceOutOfRange  = errors.New("nonce out of range")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrRollbackTooFew   = errors.New("must rollback at least 1 block")
	ErrRollbackGenesis  = errors.New("cannot rollback genesis block")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the chain.
type EventHandler func(v string, args ...any)

// EventSink receives every event appended to the log. It is called while
// the state lock is held so it must not block or call back into the state.
type EventSink func(ev eventlog.Event)

// Config represents the configuration required to start the chain.
type Config struct {
	InitialDifficulty uint64
	RewardPerBlock    float64
	InitialBalance    float64
	HashModulo        uint64
	MaxNonce          uint64
	SelectStrategy    string
	Verifier          credential.Verifier
	Storage           storage.Storage
	EvHandler         EventHandler
	EvSink            EventSink
	Now               func() time.Time
}

// State manages the chain: blocks, players, pending transactions and the
// event log. All access is serialized by a single mutex.
type State struct {
	mu deadlock.Mutex

	difficulty     uint64
	reward         float64
	initialBalance float64
	modulo         uint64
	maxNonce       uint64

	verifier  credential.Verifier
	evHandler EventHandler
	evSink    EventSink
	now       func() time.Time

	storage   storage.Storage
	mempool   *mempool.Mempool
	players   map[string]database.Player
	addresses map[string]string
	events    []eventlog.Event
}

// New constructs a new chain holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.InitialDifficulty == 0 {
		cfg.InitialDifficulty = DefaultInitialDifficulty
	}
	if cfg.RewardPerBlock == 0 {
		cfg.RewardPerBlock = DefaultRewardPerBlock
	}
	if cfg.InitialBalance == 0 {
		cfg.InitialBalance = DefaultInitialBalance
	}
	if cfg.HashModulo == 0 {
		cfg.HashModulo = digest.HashModulo
	}
	if cfg.MaxNonce == 0 {
		cfg.MaxNonce = DefaultMaxNonce
	}
	if cfg.SelectStrategy == "" {
		cfg.SelectStrategy = selector.StrategyAffordable
	}
	if cfg.Verifier == nil {
		cfg.Verifier = credential.DemoVerifier{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	// Blocks are held in memory unless another storage is provided.
	strg := cfg.Storage
	if strg == nil {
		var err error
		if strg, err = memory.New(); err != nil {
			return nil, err
		}
	}

	// Construct a mempool with the specified select strategy.
	mp, err := mempool.NewWithStrategy(cfg.SelectStrategy)
	if err != nil {
		return nil, err
	}

	state := State{
		difficulty:     cfg.InitialDifficulty,
		reward:         cfg.RewardPerBlock,
		initialBalance: cfg.InitialBalance,
		modulo:         cfg.HashModulo,
		maxNonce:       cfg.MaxNonce,
		verifier:       cfg.Verifier,
		evHandler:      ev,
		evSink:         cfg.EvSink,
		now:            cfg.Now,
		storage:        strg,
		mempool:        mp,
	}

	if err := state.reset(); err != nil {
		return nil, err
	}

	ev("state: New: chain started: difficulty[%d] reward[%v] strategy[%s]", cfg.InitialDifficulty, cfg.RewardPerBlock, cfg.SelectStrategy)

	return &state, nil
}

// Reset restores the chain to holding only the genesis block with no
// players, pending transactions or events.
func (s *State) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: Reset: restoring genesis")

	return s.reset()
}

// reset must be called with the lock held.
func (s *State) reset() error {
	if err := s.storage.Reset(); err != nil {
		return err
	}

	if err := s.storage.Write(database.Genesis(s.difficulty, s.now())); err != nil {
		return err
	}

	s.mempool.Truncate()
	s.players = make(map[string]database.Player)
	s.addresses = make(map[string]string)
	s.events = nil

	return nil
}

// =============================================================================

// Difficulty returns the current mining difficulty.
func (s *State) Difficulty() uint64 {
	return s.difficulty
}

// RewardPerBlock returns the reward paid for a mined block.
func (s *State) RewardPerBlock() float64 {
	return s.reward
}

// MaxNonce returns the largest nonce a mining attempt accepts.
func (s *State) MaxNonce() uint64 {
	return s.maxNonce
}

// HashModulo returns the size of the digest space.
func (s *State) HashModulo() uint64 {
	return s.modulo
}
