package credential

import (
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Verifier checks that a signature over a message belongs to a signer.
type Verifier interface {
	Verify(signer string, message string, signature string) bool
}

// DemoVerifier accepts every signature. It is the default mode of the
// game where signatures are placeholders.
type DemoVerifier struct{}

// Verify always reports success.
func (DemoVerifier) Verify(signer string, message string, signature string) bool {
	return true
}

// SecpVerifier requires a secp256k1 recoverable signature over the message
// that recovers to the signer account.
type SecpVerifier struct{}

// Verify recovers the public key from the signature and compares the
// derived account against the signer.
func (SecpVerifier) Verify(signer string, message string, signature string) bool {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}

	data := stamp(message)

	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return false
	}

	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), data, sig[:crypto.RecoveryIDOffset]) {
		return false
	}

	return strings.EqualFold(crypto.PubkeyToAddress(*publicKey).Hex(), signer)
}

// NewVerifier returns the strict verifier when strict is set and the demo
// verifier otherwise.
func NewVerifier(strict bool) Verifier {
	if strict {
		return SecpVerifier{}
	}
	return DemoVerifier{}
}

// =============================================================================

// TransferMessage is the canonical message a sender signs for a transfer.
func TransferMessage(from string, to string, amount float64) string {
	return fmt.Sprintf("%s:%s:%s", from, to, strconv.FormatFloat(amount, 'f', -1, 64))
}

// SignerAccount returns the secp256k1 account for the private key. The
// private key hex doubles as the secp256k1 scalar.
func SignerAccount(privateKey string) (string, error) {
	pk, err := toECDSA(privateKey)
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(pk.PublicKey).Hex(), nil
}

// SignTransfer produces the secp256k1 signature over the message that
// SecpVerifier accepts.
func SignTransfer(privateKey string, message string) (string, error) {
	pk, err := toECDSA(privateKey)
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(stamp(message), pk)
	if err != nil {
		return "", fmt.Errorf("signing message: %w", err)
	}

	return hexutil.Encode(sig), nil
}

// toECDSA converts the hex private key into a secp256k1 key.
func toECDSA(privateKey string) (*ecdsa.PrivateKey, error) {
	pk, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return pk, nil
}

// stamp returns a hash of 32 bytes that represents the message with the
// BabyBTC stamp embedded into the final hash.
func stamp(message string) []byte {
	msgHash := crypto.Keccak256([]byte(message))
	stamp := []byte("\x19BabyBTC Signed Message:\n32")

	return crypto.Keccak256(stamp, msgHash)
}
