package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasetlink/drone-spray-booking/internal/line"
	"github.com/kasetlink/drone-spray-booking/internal/model"
)

type stubPrices struct{}

func (stubPrices) ListActiveCrops(context.Context) ([]model.CropType, error)   { return nil, nil }
func (stubPrices) ListActiveSprays(context.Context) ([]model.SprayType, error) { return nil, nil }

type stubBookings struct{}

func (stubBookings) LatestByLineUser(context.Context, string) (*model.Booking, error) {
	return nil, nil
}
func (stubBookings) RecentByLineUser(context.Context, string, int) ([]model.Booking, error) {
	return nil, nil
}

func newTestWebhook(secret string) *WebhookHandler {
	bot := line.NewBot(stubPrices{}, stubBookings{}, nil, "https://farm.example.com")
	// An empty channel token yields an inert sender, so handling events
	// in tests performs no network calls.
	return NewWebhookHandler(line.NewVerifier(secret), bot, line.NewSender(""))
}

func signBody(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(h *WebhookHandler, body, signature string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("X-Line-Signature", signature)
	}
	rec := httptest.NewRecorder()
	_ = h.Receive(e.NewContext(req, rec))
	return rec
}

const callbackBody = `{"destination":"Uxxx","events":[{"type":"message","replyToken":"rt","source":{"type":"user","userId":"U123"},"message":{"id":"1","type":"text","text":"ราคา"}}]}`

func TestWebhookAcceptsSignedCallback(t *testing.T) {
	h := newTestWebhook("channel-secret")
	rec := postWebhook(h, callbackBody, signBody("channel-secret", callbackBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	h := newTestWebhook("channel-secret")
	rec := postWebhook(h, callbackBody, signBody("wrong-secret", callbackBody))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	h := newTestWebhook("channel-secret")
	rec := postWebhook(h, callbackBody, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Without a configured channel secret every delivery is rejected, even
// one whose signature would verify against an empty key.
func TestWebhookRejectsWhenSecretUnset(t *testing.T) {
	h := newTestWebhook("")
	rec := postWebhook(h, callbackBody, signBody("", callbackBody))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	h := newTestWebhook("channel-secret")
	body := `{"events":`
	rec := postWebhook(h, body, signBody("channel-secret", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
