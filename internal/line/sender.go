package line

import (
	"log"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Sender wraps the LINE push API. Delivery is best-effort: failures are
// logged and swallowed so a dead notification never fails the request
// that triggered it. Callers do not retry.
type Sender struct {
	api *messaging_api.MessagingApiAPI
}

// NewSender builds a Sender from the channel access token. With an empty
// token the Sender is inert and only logs, which keeps local development
// working without LINE credentials.
func NewSender(channelToken string) *Sender {
	if channelToken == "" {
		log.Printf("line: channel access token is not configured; push disabled")
		return &Sender{}
	}
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		log.Printf("line: init messaging client failed: %v; push disabled", err)
		return &Sender{}
	}
	return &Sender{api: api}
}

// Push sends messages to a single recipient. Nothing happens for an
// empty recipient or message list.
func (s *Sender) Push(to string, messages []messaging_api.MessageInterface) {
	if s.api == nil || to == "" || len(messages) == 0 {
		return
	}
	if _, err := s.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: messages,
	}, ""); err != nil {
		log.Printf("line: push to %s failed: %v", to, err)
	}
}

// Reply answers an inbound event via its reply token, falling back to
// nothing when the token is empty (e.g. verification deliveries).
func (s *Sender) Reply(replyToken string, messages []messaging_api.MessageInterface) {
	if s.api == nil || replyToken == "" || len(messages) == 0 {
		return
	}
	if _, err := s.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	}); err != nil {
		log.Printf("line: reply failed: %v", err)
	}
}
