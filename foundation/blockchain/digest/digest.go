// Package digest provides the toy header hash used as the mining proof and
// the simplified merkle root that binds a block to its transactions.
package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// HashModulo is the default size of the digest space. Every digest is
// reduced into [0, HashModulo).
const HashModulo uint64 = 1_000_000

// ZeroRoot is the merkle root of a block with no transactions.
var ZeroRoot = strings.Repeat("0", 64)

// TimestampLayout is how header timestamps are rendered before hashing.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// prefixLen is how many characters of the hash-like header fields take part
// in the digest.
const prefixLen = 8

// =============================================================================

// Header represents the fields of a block that are hashed to produce the
// mining digest.
type Header struct {
	Index      uint64
	PrevHash   string
	MerkleRoot string
	Timestamp  string
	Nonce      uint64
}

// NewHeader constructs a header using the specified instant for the
// timestamp field.
func NewHeader(index uint64, prevHash string, merkleRoot string, now time.Time, nonce uint64) Header {
	return Header{
		Index:      index,
		PrevHash:   prevHash,
		MerkleRoot: merkleRoot,
		Timestamp:  now.Format(TimestampLayout),
		Nonce:      nonce,
	}
}

// String renders the header in the form that is hashed. Only the first
// eight characters of the previous hash and merkle root are used.
func (h Header) String() string {
	return fmt.Sprintf("%d:%s:%s:%s:%d", h.Index, Prefix(h.PrevHash), Prefix(h.MerkleRoot), h.Timestamp, h.Nonce)
}

// Sum computes the digest for the header reduced into [0, modulo). A zero
// modulo falls back to HashModulo. MD5 is used here for speed only, the
// digest is not a security boundary.
func Sum(h Header, modulo uint64) uint64 {
	if modulo == 0 {
		modulo = HashModulo
	}

	sum := md5.Sum([]byte(h.String()))
	n := binary.BigEndian.Uint32(sum[:4])

	return uint64(n) % modulo
}

// MerkleRoot returns the hex encoded SHA-256 of the concatenated ids. This is
// not a real merkle tree: the ids are concatenated in order, so reordering
// them changes the root.
func MerkleRoot(ids []string) string {
	if len(ids) == 0 {
		return ZeroRoot
	}

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Prefix returns the leading characters of a hash-like string that take
// part in the header.
func Prefix(s string) string {
	if len(s) <= prefixLen {
		return s
	}
	return s[:prefixLen]
}
