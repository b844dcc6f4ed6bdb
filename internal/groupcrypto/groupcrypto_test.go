package groupcrypto

import (
	"bytes"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	a, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if len(a.PublicKey) != KeySize || len(a.SecretKey) != KeySize {
		t.Fatalf("bad key sizes: %d/%d", len(a.PublicKey), len(a.SecretKey))
	}
	if bytes.Equal(a.PublicKey, b.PublicKey) {
		t.Fatal("two generated key pairs share a public key")
	}
}

func TestSessionIDRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	id := SessionID(SessionIDPrefixStandard, kp.PublicKey)
	if len(id) != 2+2*KeySize {
		t.Fatalf("unexpected id length %d", len(id))
	}
	pub, err := PublicKeyFromSessionID(id)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pub, kp.PublicKey) {
		t.Fatal("public key did not round-trip through session id")
	}
}

func TestPublicKeyFromSessionIDRejectsGarbage(t *testing.T) {
	for _, id := range []string{"", "ff00", "05zzzz", "0512"} {
		if _, err := PublicKeyFromSessionID(id); err == nil {
			t.Fatalf("expected error for %q", id)
		}
	}
}

func TestSealForOnlyRecipientOpens(t *testing.T) {
	alice, _ := GenerateKeyPair()
	eve, _ := GenerateKeyPair()

	sealed, err := SealFor(alice.PublicKey, []byte("rotated key material"))
	if err != nil {
		t.Fatal(err)
	}
	plain, err := OpenFrom(alice, sealed)
	if err != nil {
		t.Fatal(err)
	}
	if string(plain) != "rotated key material" {
		t.Fatalf("got %q", plain)
	}
	if _, err := OpenFrom(eve, sealed); err == nil {
		t.Fatal("wrong recipient opened the blob")
	}
}

func TestHashLabelsSeparateDomains(t *testing.T) {
	a := Hash("a", []byte("x"))
	b := Hash("b", []byte("x"))
	if bytes.Equal(a, b) {
		t.Fatal("labels should change the digest")
	}
	if len(a) != 32 {
		t.Fatalf("digest length %d", len(a))
	}
}
