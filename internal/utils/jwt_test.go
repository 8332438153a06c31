package utils

import (
	"testing"
	"time"

	"github.com/citywave/table-reservation/internal/model"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	admin := &model.AdminAccount{ID: "adm-1", Username: "alice"}
	tok, err := NewSessionToken("secret", admin, 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if time.Until(tok.Exp) <= 0 {
		t.Errorf("expiry %v is not in the future", tok.Exp)
	}

	id, err := ParseSessionToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "adm-1" {
		t.Errorf("subject = %q, want adm-1", id)
	}
}

func TestParseSessionTokenRejects(t *testing.T) {
	admin := &model.AdminAccount{ID: "adm-1", Username: "alice"}
	tok, err := NewSessionToken("secret", admin, 60)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"wrong secret", "other", tok.Token},
		{"garbage", "secret", "not.a.jwt"},
		{"empty", "secret", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSessionToken(tc.secret, tc.raw); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	admin := &model.AdminAccount{ID: "adm-1", Username: "alice"}
	tok, err := NewSessionToken("secret", admin, -1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSessionToken("secret", tok.Token); err == nil {
		t.Error("expired token accepted")
	}
}
