package auth

import (
	"strings"
	"testing"
)

// Tests use bcrypt cost 4 (the minimum) — cost 12 would add ~250ms per
// hashing operation and this package alone does a dozen of them.
func newTestPasswordService() *PasswordService {
	return &PasswordService{cost: 4}
}

func TestHash_ProducesBcryptHash(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Hash() = %q, want a $2a$-prefixed bcrypt hash", hash)
	}
}

func TestHash_DifferentSaltsPerCall(t *testing.T) {
	ps := newTestPasswordService()

	h1, _ := ps.Hash("same password")
	h2, _ := ps.Hash("same password")
	if h1 == h2 {
		t.Error("Hash() produced identical hashes for two calls — salt is not random")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswordService()

	_, err := ps.Hash(strings.Repeat("x", 73))
	if err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}
}

func TestVerify_CorrectPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "hunter2"); err != nil {
		t.Errorf("Verify() rejected the correct password: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "hunter3"); err == nil {
		t.Error("Verify() accepted the wrong password")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	ps := newTestPasswordService()

	if err := ps.Verify("not-a-bcrypt-hash", "anything"); err == nil {
		t.Error("Verify() accepted a malformed hash")
	}
}
