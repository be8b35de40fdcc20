package webserver

import (
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/zettelwerk/ticket-gateway/internal/env"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	env.Value = env.Env{
		APIKey:         "test-key",
		UIPass:         "test-pass",
		UIRememberDays: 30,
		Location:       time.UTC,
		Timezone:       "UTC",
		PrintWidthPx:   576,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setTestEnv(t)

	token := signToken(strconv.FormatInt(time.Now().Unix(), 10))
	if !verifyToken(token) {
		t.Fatal("freshly signed token did not verify")
	}
}

func TestTokenRejections(t *testing.T) {
	setTestEnv(t)

	fresh := strconv.FormatInt(time.Now().Unix(), 10)
	expired := strconv.FormatInt(time.Now().Add(-31*24*time.Hour).Unix(), 10)
	future := strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no separator", token: "1234567890abcdef"},
		{name: "tampered timestamp", token: "9" + signToken(fresh)},
		{name: "tampered signature", token: fresh + "." + strings.Repeat("0", 32)},
		{name: "expired", token: signToken(expired)},
		{name: "issued in the future", token: signToken(future)},
		{name: "non-numeric issued-at", token: signToken("yesterday")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if verifyToken(tc.token) {
				t.Fatalf("verifyToken(%q) = true, want false", tc.token)
			}
		})
	}
}

func TestTokenInvalidAfterKeyChange(t *testing.T) {
	setTestEnv(t)
	token := signToken(strconv.FormatInt(time.Now().Unix(), 10))

	env.Value.APIKey = "rotated-key"
	if verifyToken(token) {
		t.Fatal("token still verifies after key rotation")
	}
}

func TestTokenStructure(t *testing.T) {
	setTestEnv(t)

	issuedAt := strconv.FormatInt(time.Now().Unix(), 10)
	token := signToken(issuedAt)

	gotIssued, sig, ok := strings.Cut(token, ".")
	if !ok {
		t.Fatalf("token %q is not issued-at.signature", token)
	}
	if gotIssued != issuedAt {
		t.Fatalf("issued-at field = %q, want %q", gotIssued, issuedAt)
	}
	if len(sig) != 32 {
		t.Fatalf("signature length = %d, want 32", len(sig))
	}
	if _, err := hex.DecodeString(sig); err != nil {
		t.Fatalf("signature is not hex: %v", err)
	}
}
