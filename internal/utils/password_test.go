package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plain password")
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// misconfigured costs must not break login; they fall back to the
	// bcrypt default instead of erroring out of GenerateFromPassword
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("s3cret-pass", cost)
		if err != nil {
			t.Fatalf("HashPassword(cost=%d): %v", cost, err)
		}
		if !VerifyPassword(hash, "s3cret-pass") {
			t.Errorf("hash produced with cost %d does not verify", cost)
		}
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	tok, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(tok.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96", len(tok.Raw))
	}
	h1 := HashRefreshRaw(tok.Raw)
	h2 := HashRefreshRaw(tok.Raw)
	if h1 != h2 {
		t.Error("hashing the same token twice differed")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}

	other, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if HashRefreshRaw(other.Raw) == h1 {
		t.Error("two distinct tokens hashed identically")
	}
}
