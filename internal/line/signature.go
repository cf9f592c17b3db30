// Package line implements the LINE messaging slice: webhook signature
// verification, keyword routing, message composition and the outbound
// push sender.
package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log"
)

// Verifier checks webhook authenticity. LINE signs the raw request body
// with HMAC-SHA256 using the channel secret and sends the base64 digest in
// the X-Line-Signature header.
type Verifier struct {
	secret string
}

// NewVerifier returns a Verifier for the given channel secret. An empty
// secret is allowed at construction time; Verify then rejects every
// request and logs the misconfiguration so it is distinguishable from a
// forged delivery.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify reports whether signature matches base64(HMAC-SHA256(secret, body)).
// A missing header or unconfigured secret always fails; on false the caller
// must respond 401 and stop processing.
func (v *Verifier) Verify(body []byte, signature string) bool {
	if v.secret == "" {
		log.Printf("line: channel secret is not configured; rejecting webhook")
		return false
	}
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return expected == signature
}
