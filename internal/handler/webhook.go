package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/line"
)

// WebhookHandler receives LINE platform callbacks. The raw body is read
// first because signature verification covers the exact bytes sent, then
// events are handled one by one and answered with pushes to the sender's
// LINE user id. Replies are pushed rather than sent via the reply token
// so slow handlers cannot outlive the token's validity window.
type WebhookHandler struct {
	Verifier *line.Verifier
	Bot      *line.Bot
	Sender   *line.Sender
}

func NewWebhookHandler(v *line.Verifier, b *line.Bot, s *line.Sender) *WebhookHandler {
	return &WebhookHandler{Verifier: v, Bot: b, Sender: s}
}

// Receive handles POST /webhook. The platform expects a quick 200; any
// non-2xx triggers redelivery, so per-event failures are logged and
// swallowed rather than bubbled up.
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "cannot read body")
	}
	if !h.Verifier.Verify(body, c.Request().Header.Get("X-Line-Signature")) {
		return fail(c, http.StatusUnauthorized, "invalid signature")
	}

	var req line.CallbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	for _, ev := range req.Events {
		if ev.Source.UserID == "" {
			continue // group/room events carry no user id to answer to
		}
		msgs := h.Bot.HandleEvent(ctx, ev)
		if len(msgs) == 0 {
			continue
		}
		h.Sender.Push(ev.Source.UserID, msgs)
	}
	log.Printf("webhook: handled %d event(s)", len(req.Events))
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
