package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v := NewVerifier("channel-secret")
	body := []byte(`{"destination":"U1","events":[]}`)
	assert.True(t, v.Verify(body, sign("channel-secret", body)))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	v := NewVerifier("channel-secret")
	body := []byte(`{"destination":"U1","events":[]}`)
	sig := sign("channel-secret", body)

	tampered := append([]byte(nil), body...)
	tampered[0] ^= 0x01
	assert.False(t, v.Verify(tampered, sig))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("channel-secret")
	body := []byte(`{}`)
	assert.False(t, v.Verify(body, sign("another-secret", body)))
}

func TestVerifyRejectsMissingSignature(t *testing.T) {
	v := NewVerifier("channel-secret")
	assert.False(t, v.Verify([]byte(`{}`), ""))
}

func TestVerifyRejectsWhenSecretNotConfigured(t *testing.T) {
	v := NewVerifier("")
	body := []byte(`{}`)
	// Even a signature that would match an empty key is rejected.
	assert.False(t, v.Verify(body, sign("", body)))
}
