package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignedPrefix marks a signed cookie value.
const SignedPrefix = "s:"

// MinSecretLen is the minimum accepted secret length in bytes.
const MinSecretLen = 32

// Signer signs and verifies cookie values with HMAC-SHA256.
type Signer struct {
	secret []byte
}

// NewSigner returns a Signer for the given secret.
func NewSigner(secret string) (*Signer, error) {
	switch {
	case secret == "":
		return nil, ErrNoSecret
	case len(secret) < MinSecretLen:
		return nil, ErrBadSecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns "s:" + base64(value) + "." + base64(mac).
func (s *Signer) Sign(value string) string {
	return SignedPrefix +
		base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(s.mac([]byte(value)))
}

// Unsign verifies raw and returns the original value.
// Returns ErrNotSigned when raw lacks the signed marker and ErrBadSig when the
// tag does not match.
func (s *Signer) Unsign(raw string) (string, error) {
	rest, ok := strings.CutPrefix(raw, SignedPrefix)
	if !ok {
		return "", ErrNotSigned
	}

	encValue, encSig, ok := strings.Cut(rest, ".")
	if !ok {
		return "", ErrBadSig
	}

	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}

	if !hmac.Equal(sig, s.mac(value)) {
		return "", ErrBadSig
	}
	return string(value), nil
}

// IsSigned reports whether raw carries the signed marker.
func IsSigned(raw string) bool {
	return strings.HasPrefix(raw, SignedPrefix)
}

func (s *Signer) mac(value []byte) []byte {
	m := hmac.New(sha256.New, s.secret)
	m.Write(value)
	return m.Sum(nil)
}
