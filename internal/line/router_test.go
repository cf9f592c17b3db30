package line

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteTextKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"จอง", IntentBooking},
		{"อยากจองคิวฉีดพ่น", IntentBooking},
		{"BOOKING", IntentBooking},
		{"เช่าอุปกรณ์", IntentRental},
		{"equipment rental", IntentRental},
		{"ประวัติ", IntentHistory},
		{"สถานะ", IntentStatus},
		{"  ราคา  ", IntentPrice},
		{"Price?", IntentPrice},
		{"ช่วยเหลือ", IntentHelp},
		{"help", IntentHelp},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RouteText(tc.text), "text %q", tc.text)
	}
}

// Keyword groups are checked in a fixed order, so a text containing both
// "จอง" and "สถานะ" belongs to the booking group.
func TestRouteTextGroupOrder(t *testing.T) {
	assert.Equal(t, IntentBooking, RouteText("สถานะการจอง"))
	assert.Equal(t, IntentRental, RouteText("ราคาเช่าอุปกรณ์"))
}

func TestRouteTextFreeForm(t *testing.T) {
	// A question marker sends unmatched text to the AI branch.
	assert.Equal(t, IntentAI, RouteText("ทำไมต้องบินตอนเช้า"))
	assert.Equal(t, IntentAI, RouteText("what should I do"))
	// Long texts count as questions even without a marker.
	assert.Equal(t, IntentAI, RouteText("โดรนบินได้สูงแค่ไหนครับ"))
	// Short throwaway texts fall back to the welcome card.
	assert.Equal(t, IntentWelcome, RouteText("สวัสดี"))
	assert.Equal(t, IntentWelcome, RouteText("ok"))
	assert.Equal(t, IntentWelcome, RouteText(""))
}

func TestShouldUseAI(t *testing.T) {
	assert.True(t, shouldUseAI("มีบริการหว่านเมล็ดไหม"))
	assert.True(t, shouldUseAI("อธิบายขั้นตอนหลังนัดหมายให้หน่อยครับ"))
	assert.False(t, shouldUseAI("ขอบคุณ"))
	assert.False(t, shouldUseAI(""))
}
