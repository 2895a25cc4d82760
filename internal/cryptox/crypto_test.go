package cryptox

import (
	"errors"
	"testing"
)

type payload struct {
	UserID string `json:"userId"`
	Note   string `json:"note"`
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey("test-secret")

	in := payload{UserID: "u-1", Note: "hello"}
	token, err := Seal(in, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out payload
	if err := Open(token, key, &out); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key := DeriveKey("test-secret")

	a, err := Seal(payload{UserID: "u-1"}, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	b, err := Seal(payload{UserID: "u-1"}, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if a == b {
		t.Fatalf("two seals of the same payload must differ")
	}
}

func TestOpen_WrongKey(t *testing.T) {
	token, err := Seal(payload{UserID: "u-1"}, DeriveKey("secret-a"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out payload
	err = Open(token, DeriveKey("secret-b"), &out)
	if !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("want ErrMalformedToken, got %v", err)
	}
}

func TestOpen_Tampered(t *testing.T) {
	key := DeriveKey("test-secret")
	token, err := Seal(payload{UserID: "u-1"}, key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 0x01

	var out payload
	err = Open(string(tampered), key, &out)
	if !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("want ErrMalformedToken, got %v", err)
	}
}

func TestOpen_Garbage(t *testing.T) {
	key := DeriveKey("test-secret")

	var out payload
	for _, token := range []string{"", "!!!", "c2hvcnQ"} {
		if err := Open(token, key, &out); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: want ErrMalformedToken, got %v", token, err)
		}
	}
}

func TestDeriveKey_DeterministicAnd32Bytes(t *testing.T) {
	a := DeriveKey("secret")
	b := DeriveKey("secret")
	if len(a) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(a))
	}
	if string(a) != string(b) {
		t.Fatalf("key derivation must be deterministic")
	}
}
