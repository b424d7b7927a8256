package token

import "testing"

func TestNewRefreshTokenIsUnique(t *testing.T) {
	plainA, fpA, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	plainB, fpB, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}

	if plainA == "" || fpA == "" {
		t.Fatal("token or fingerprint is empty")
	}
	if plainA == plainB {
		t.Error("two tokens should not collide")
	}
	if fpA == fpB {
		t.Error("two fingerprints should not collide")
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	plain, fp, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}

	if got := Fingerprint(plain); got != fp {
		t.Errorf("Fingerprint(plain) = %q, want %q", got, fp)
	}
	if Fingerprint(plain) == plain {
		t.Error("fingerprint must differ from the plain token")
	}
	if len(Fingerprint(plain)) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(Fingerprint(plain)))
	}
}
