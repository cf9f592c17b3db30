package line

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A sender without credentials must stay inert instead of panicking,
// since local development runs without a LINE channel.
func TestInertSenderIsSafe(t *testing.T) {
	s := NewSender("")
	assert.NotPanics(t, func() {
		s.Push("U123", TextMessages("สวัสดี"))
		s.Push("", nil)
		s.Reply("token", TextMessages("สวัสดี"))
		s.Reply("", nil)
	})
}
