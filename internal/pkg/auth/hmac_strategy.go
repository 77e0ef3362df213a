package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultTokenTTL = 24 * time.Hour

// HMACStrategy signs tokens of the form base64(adminID:expiry:signature)
// with HMAC-SHA256. Tokens are opaque to clients.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds a strategy with the given secret. A non-positive
// TTL falls back to defaultTokenTTL.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	s := &HMACStrategy{secret: []byte(secret), ttl: opts.TTL}
	if s.ttl <= 0 {
		s.ttl = defaultTokenTTL
	}
	return s
}

// IssueToken generates a signed token carrying the admin id and expiry.
func (s *HMACStrategy) IssueToken(adminID int64) (string, error) {
	payload := fmt.Sprintf("%d:%d", adminID, time.Now().Add(s.ttl).Unix())
	token := payload + ":" + s.sign(payload)
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken verifies signature and expiry and returns the admin id.
// Every failure mode maps to ErrInvalidToken; callers need no detail.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return 0, ErrInvalidToken
	}
	payload, sig := parts[0]+":"+parts[1], parts[2]
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	adminID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if time.Now().After(time.Unix(expiry, 0)) {
		return 0, ErrInvalidToken
	}
	return adminID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
