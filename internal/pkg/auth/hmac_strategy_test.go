package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func forge(strategy *HMACStrategy, payload string) string {
	sig := strategy.sign(payload)
	return base64.StdEncoding.EncodeToString([]byte(payload + ":" + sig))
}

func TestNewHMACStrategy(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected default ttl: %s", strategy.ttl)
	}
	if strategy.Name() != "hmac" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}

	custom := NewHMACStrategy("secret", Options{TTL: 2 * time.Hour})
	if custom.ttl != 2*time.Hour {
		t.Fatalf("unexpected custom ttl: %s", custom.ttl)
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	adminID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if adminID != 42 {
		t.Fatalf("unexpected admin id: %d", adminID)
	}
}

func TestHMACStrategyParseTampered(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		t.Fatalf("unexpected parts count: %d", len(parts))
	}
	parts[2] = "tampered"
	forged := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyParseRejectsMalformedTokens(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	future := time.Now().Add(time.Minute).Unix()

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "not-base64"},
		{"too few parts", base64.StdEncoding.EncodeToString([]byte("only:two"))},
		{"admin id not numeric", forge(strategy, fmt.Sprintf("abc:%d", future))},
		{"expiry not numeric", forge(strategy, "10:not-a-number")},
		{"expired", forge(strategy, fmt.Sprintf("10:%d", time.Now().Add(-time.Minute).Unix()))},
		{"wrong secret", func() string {
			other := NewHMACStrategy("other-secret", Options{})
			return forge(other, fmt.Sprintf("10:%d", future))
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := strategy.ParseToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
