// Package credential produces the simplified player credentials: a word
// mnemonic, keys derived from it by hashing, a BABY address and an HMAC
// signature. None of this is real key derivation.
package credential

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
)

// AddressPrefix starts every player address.
const AddressPrefix = "BABY"

// MnemonicLength is the number of words in a generated mnemonic.
const MnemonicLength = 12

// addressSuffixLen is how many trailing characters of the public key make
// up the address.
const addressSuffixLen = 16

// vocabulary is the fixed word list mnemonics are sampled from.
var vocabulary = [...]string{
	"apple", "brave", "candy", "dream", "eagle", "fiber", "giant", "happy",
	"island", "jungle", "kitten", "lemon", "mango", "noble", "ocean", "piano",
	"queen", "river", "sunset", "tiger", "umbrella", "valley", "window", "yellow",
	"zebra", "anchor", "bridge", "castle", "diamond", "engine", "forest", "garden",
	"harbor", "igloo", "jacket", "kernel", "ladder", "marble", "needle", "office",
	"palace", "quartz", "rocket", "shadow", "temple", "unique", "violin", "wallet",
	"xenon", "yacht", "zodiac", "bronze", "copper", "delta", "emerald", "flame",
	"globe", "horizon", "impact", "journal", "knight", "legacy", "mirror", "nexus",
}

// Vocabulary returns a copy of the mnemonic word list.
func Vocabulary() []string {
	words := make([]string, len(vocabulary))
	copy(words, vocabulary[:])
	return words
}

// =============================================================================

// Credentials is the full set of values produced for a new player. The
// mnemonic is handed to the player once and is never stored.
type Credentials struct {
	Mnemonic      string
	PrivateKey    string
	PublicKey     string
	Address       string
	SignerAccount string
}

// New generates a fresh mnemonic and derives the credentials from it.
func New() (Credentials, error) {
	return FromMnemonic(GenerateMnemonic())
}

// FromMnemonic derives the credentials for an existing mnemonic.
func FromMnemonic(mnemonic string) (Credentials, error) {
	privateKey := DerivePrivateKey(mnemonic)
	publicKey := DerivePublicKey(privateKey)

	account, err := SignerAccount(privateKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("deriving signer account: %w", err)
	}

	creds := Credentials{
		Mnemonic:      mnemonic,
		PrivateKey:    privateKey,
		PublicKey:     publicKey,
		Address:       DeriveAddress(publicKey),
		SignerAccount: account,
	}

	return creds, nil
}

// GenerateMnemonic samples MnemonicLength distinct words from the vocabulary.
func GenerateMnemonic() string {
	perm := rand.Perm(len(vocabulary))

	words := make([]string, MnemonicLength)
	for i := range words {
		words[i] = vocabulary[perm[i]]
	}

	return strings.Join(words, " ")
}

// DerivePrivateKey returns the hex SHA-256 of the mnemonic text.
func DerivePrivateKey(mnemonic string) string {
	sum := sha256.Sum256([]byte(mnemonic))
	return hex.EncodeToString(sum[:])
}

// DerivePublicKey returns the hex SHA-256 of the private key text. There is
// no elliptic curve math involved.
func DerivePublicKey(privateKey string) string {
	sum := sha256.Sum256([]byte(privateKey))
	return hex.EncodeToString(sum[:])
}

// DeriveAddress builds the BABY address from the last characters of the
// public key.
func DeriveAddress(publicKey string) string {
	suffix := publicKey
	if len(publicKey) > addressSuffixLen {
		suffix = publicKey[len(publicKey)-addressSuffixLen:]
	}

	return AddressPrefix + strings.ToUpper(suffix)
}

// Sign produces a hex HMAC-SHA256 of the message keyed by the private key.
func Sign(privateKey string, message string) string {
	mac := hmac.New(sha256.New, []byte(privateKey))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
