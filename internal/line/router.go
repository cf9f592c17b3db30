package line

import (
	"strings"
	"unicode/utf8"
)

// Intent is the route chosen for an inbound text message.
type Intent int

const (
	IntentBooking Intent = iota
	IntentRental
	IntentHistory
	IntentStatus
	IntentPrice
	IntentHelp
	IntentAI
	IntentWelcome
)

// keywordGroups is the fixed dispatch table. Groups are tested in order
// and the first match wins; the ordering is part of the contract because
// keyword sets overlap (e.g. "สถานะการจอง" must hit the booking group
// before the status group is ever consulted — same as the original flow).
var keywordGroups = []struct {
	intent   Intent
	keywords []string
}{
	{IntentBooking, []string{"จอง", "ฉีดพ่น", "พ่นยา", "booking", "spray"}},
	{IntentRental, []string{"เช่า", "อุปกรณ์", "rental", "equipment"}},
	{IntentHistory, []string{"ประวัติ", "history"}},
	{IntentStatus, []string{"สถานะ", "status"}},
	{IntentPrice, []string{"ราคา", "price"}},
	{IntentHelp, []string{"ช่วยเหลือ", "วิธีใช้", "help"}},
}

// RouteText maps a message text to an intent. Keyword matching is by
// substring, English keywords case-insensitively. When no group matches,
// question-like texts go to the AI fallback and everything else gets the
// generic welcome.
func RouteText(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(t, kw) {
				return g.intent
			}
		}
	}
	if shouldUseAI(t) {
		return IntentAI
	}
	return IntentWelcome
}

// questionMarkers are tokens that make a free-form text worth an AI
// answer even when it is short.
var questionMarkers = []string{"?", "ไหม", "มั้ย", "อะไร", "อย่างไร", "ยังไง", "ทำไม", "เมื่อไหร่", "กี่", "how", "what", "when", "why"}

// shouldUseAI judges whether a text that matched no keyword group is
// worth sending to the language model. Short throwaway messages
// (greetings, sticker substitutes) are not.
func shouldUseAI(t string) bool {
	if t == "" {
		return false
	}
	for _, m := range questionMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return utf8.RuneCountInString(t) >= 15
}
