package credential_test

import (
	"strings"
	"testing"

	"github.com/babybtc/quantlab/foundation/blockchain/credential"
)

const (
	mnemonic   = "apple brave candy dream eagle fiber giant happy island jungle kitten lemon"
	privateKey = "acf3d3fb5c260ae831ce924a0224ef178b7498876b5a6994637d1ad1b8916b11"
	publicKey  = "fbc9baa8cefc5ed595774f180de8070d3fee4f16bcb61ba4d29f1c0b7d066c6f"
	address    = "BABYD29F1C0B7D066C6F"
	helloSig   = "eecadb4fb1dff0d50081df860905ef611b6b40ac6f046ae89ed456a4f0f5b340"
)

// =============================================================================

func Test_Derivation(t *testing.T) {
	creds, err := credential.FromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("Should be able to derive credentials: %s", err)
	}

	if creds.PrivateKey != privateKey {
		t.Logf("got: %s", creds.PrivateKey)
		t.Logf("exp: %s", privateKey)
		t.Fatalf("Should get back the right private key.")
	}

	if creds.PublicKey != publicKey {
		t.Logf("got: %s", creds.PublicKey)
		t.Logf("exp: %s", publicKey)
		t.Fatalf("Should get back the right public key.")
	}

	if creds.Address != address {
		t.Logf("got: %s", creds.Address)
		t.Logf("exp: %s", address)
		t.Fatalf("Should get back the right address.")
	}

	if !strings.HasPrefix(creds.SignerAccount, "0x") || len(creds.SignerAccount) != 42 {
		t.Fatalf("Should get back a signer account, got %q", creds.SignerAccount)
	}
}

func Test_GenerateMnemonic(t *testing.T) {
	vocab := make(map[string]bool)
	for _, w := range credential.Vocabulary() {
		vocab[w] = true
	}

	for i := 0; i < 20; i++ {
		words := strings.Fields(credential.GenerateMnemonic())
		if len(words) != credential.MnemonicLength {
			t.Fatalf("Should get back %d words, got %d", credential.MnemonicLength, len(words))
		}

		seen := make(map[string]bool)
		for _, w := range words {
			if !vocab[w] {
				t.Fatalf("Should only use vocabulary words, got %q", w)
			}
			if seen[w] {
				t.Fatalf("Should not repeat a word, got %q twice", w)
			}
			seen[w] = true
		}
	}
}

func Test_Sign(t *testing.T) {
	sig := credential.Sign(privateKey, "hello")
	if sig != helloSig {
		t.Logf("got: %s", sig)
		t.Logf("exp: %s", helloSig)
		t.Fatalf("Should get back the right signature.")
	}
}

func Test_Verifiers(t *testing.T) {
	creds, err := credential.FromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("Should be able to derive credentials: %s", err)
	}

	msg := credential.TransferMessage(creds.Address, "BABY0000000000000000", 30)
	if msg != "BABYD29F1C0B7D066C6F:BABY0000000000000000:30" {
		t.Fatalf("Should build the transfer message, got %q", msg)
	}

	var demo credential.DemoVerifier
	if !demo.Verify("", msg, "anything") {
		t.Fatal("Should accept every signature in demo mode.")
	}

	sig, err := credential.SignTransfer(creds.PrivateKey, msg)
	if err != nil {
		t.Fatalf("Should be able to sign the transfer: %s", err)
	}

	strict := credential.NewVerifier(true)
	if !strict.Verify(creds.SignerAccount, msg, sig) {
		t.Fatal("Should accept a signature from the signer.")
	}

	if strict.Verify(creds.SignerAccount, msg+"0", sig) {
		t.Fatal("Should reject a signature over a different message.")
	}

	if strict.Verify("0x0000000000000000000000000000000000000000", msg, sig) {
		t.Fatal("Should reject a signature from another signer.")
	}

	if strict.Verify(creds.SignerAccount, msg, "demo_signature") {
		t.Fatal("Should reject a placeholder signature.")
	}
}
