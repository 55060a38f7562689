package state

import (
	"fmt"

	"github.com/babybtc/quantlab/foundation/blockchain/credential"
	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/google/uuid"
)

// DemoSignature is used for transfers submitted without a signature.
const DemoSignature = "demo_signature"

// playerIDLen is the number of uuid characters used for a player id.
const playerIDLen = 8

// Registration is the result of registering a player. The mnemonic is
// only ever returned here.
type Registration struct {
	Player   database.Player
	Mnemonic string
	Snapshot Snapshot
}

// RegisterPlayer creates a player with fresh credentials and the initial
// balance. An empty name is replaced with one generated from the id.
func (s *State) RegisterPlayer(name string) (Registration, error) {
	creds, err := credential.New()
	if err != nil {
		return Registration{}, fmt.Errorf("generating credentials: %w", err)
	}

	id := uuid.NewString()[:playerIDLen]
	if name == "" {
		name = database.DefaultName(id)
	}

	player := database.Player{
		ID:            id,
		Name:          name,
		Address:       creds.Address,
		PublicKey:     creds.PublicKey,
		SignerAccount: creds.SignerAccount,
		Balance:       s.initialBalance,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addPlayer(player); err != nil {
		return Registration{}, err
	}

	s.evHandler("state: RegisterPlayer: id[%s] name[%s] address[%s]", player.ID, player.Name, player.Address)

	reg := Registration{
		Player:   player.Copy(),
		Mnemonic: creds.Mnemonic,
		Snapshot: s.snapshot(player.ID),
	}

	return reg, nil
}

// =============================================================================

// MineResult describes a single mining attempt. Block is only set when the
// attempt was solved.
type MineResult struct {
	Solved  bool
	Block   database.Block
	Attempt database.Attempt
	Reward  float64
	Player  database.Player
}

// Mine evaluates one nonce for the player against the next block. On
// success the block is appended, the mined transactions leave the pending
// pool, the reward is credited and every transfer in the block is applied.
// The whole operation runs in one critical section.
func (s *State) Mine(playerID string, nonce uint64) (MineResult, error) {
	if nonce > s.maxNonce {
		return MineResult{}, fmt.Errorf("nonce %d: %w", nonce, ErrNonceOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, exists := s.players[playerID]
	if !exists {
		return MineResult{}, ErrPlayerNotFound
	}

	now := s.now()

	player.Stats.MiningAttempts++
	player.Stats.LastActiveAt = &now
	s.players[playerID] = player

	latest, err := s.storage.Latest()
	if err != nil {
		return MineResult{}, fmt.Errorf("reading latest block: %w", err)
	}

	// The reward is credited before the transfers are applied so the miner
	// can spend it within the same block.
	balances := make(map[string]float64, len(s.players))
	for _, p := range s.players {
		balances[p.Address] = p.Balance
	}
	balances[player.Address] += s.reward

	coinbase := database.NewCoinbaseTx(player.Address, s.reward, now)
	txs := append([]database.Tx{coinbase}, s.mempool.PickBest(balances)...)

	block, attempt := database.AttemptMine(database.MineArgs{
		Index:        latest.Index + 1,
		PrevHash:     latest.Hash(),
		Nonce:        nonce,
		Transactions: txs,
		Difficulty:   s.difficulty,
		Modulo:       s.modulo,
		MinerID:      playerID,
		Now:          now,
	})

	s.evHandler("state: Mine: player[%s] nonce[%d]: %s", playerID, nonce, attempt.Equation())

	if !attempt.Solved {
		return MineResult{Attempt: attempt, Reward: s.reward, Player: player.Copy()}, nil
	}

	if err := s.addBlock(block); err != nil {
		return MineResult{}, err
	}

	player.Balance += s.reward
	player.Stats.BlocksMined++
	s.players[playerID] = player

	for _, tx := range block.Transactions {
		if tx.IsCoinbase() {
			continue
		}
		s.applyTransfer(tx)
	}

	player = s.players[playerID]
	s.addEvent(eventlog.NewBlockMined(block, player, s.reward, now))

	res := MineResult{
		Solved:  true,
		Block:   block.Copy(),
		Attempt: attempt,
		Reward:  s.reward,
		Player:  player.Copy(),
	}

	return res, nil
}

// applyTransfer moves the amount between the players owning the addresses.
// Addresses without a player are skipped. Must be called with the lock held.
func (s *State) applyTransfer(tx database.Tx) {
	if from, exists := s.playerByAddress(tx.From); exists {
		from.Balance -= tx.Amount
		s.players[from.ID] = from
	}

	if to, exists := s.playerByAddress(tx.To); exists {
		to.Balance += tx.Amount
		s.players[to.ID] = to
	}
}

// =============================================================================

// Transfer validates a transfer between two players and queues it in the
// pending pool. Balances only change once the transfer is mined.
func (s *State) Transfer(fromID string, toID string, amount float64, signature string) (database.Tx, error) {
	if signature == "" {
		signature = DemoSignature
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, exists := s.players[fromID]
	if !exists {
		return database.Tx{}, ErrSenderNotFound
	}

	to, exists := s.players[toID]
	if !exists {
		return database.Tx{}, ErrReceiverNotFound
	}

	msg := credential.TransferMessage(fromID, toID, amount)
	if !s.verifier.Verify(from.SignerAccount, msg, signature) {
		return database.Tx{}, ErrInvalidSignature
	}

	now := s.now()
	memo := fmt.Sprintf("Transfer from %s to %s", from.DisplayName(), to.DisplayName())
	tx := database.NewTx(from.Address, to.Address, amount, signature, memo, now)

	if err := database.ValidateTransaction(tx, from); err != nil {
		return database.Tx{}, err
	}

	s.mempool.Add(tx)
	s.addEvent(eventlog.NewTxCreated(tx, from, &to, now))

	return tx, nil
}
