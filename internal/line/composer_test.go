package line

import (
	"context"
	"errors"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

type fakePrices struct {
	crops  []model.CropType
	sprays []model.SprayType
	err    error
}

func (f *fakePrices) ListActiveCrops(context.Context) ([]model.CropType, error) {
	return f.crops, f.err
}
func (f *fakePrices) ListActiveSprays(context.Context) ([]model.SprayType, error) {
	return f.sprays, f.err
}

type fakeBookings struct {
	latest *model.Booking
	recent []model.Booking
	err    error
}

func (f *fakeBookings) LatestByLineUser(context.Context, string) (*model.Booking, error) {
	return f.latest, f.err
}
func (f *fakeBookings) RecentByLineUser(context.Context, string, int) ([]model.Booking, error) {
	return f.recent, f.err
}

type fakeAI struct {
	answer string
	err    error
}

func (f *fakeAI) Answer(context.Context, string) (string, error) { return f.answer, f.err }

func bubbleOf(t *testing.T, msgs []messaging_api.MessageInterface) *messaging_api.FlexBubble {
	t.Helper()
	require.Len(t, msgs, 1)
	flex, ok := msgs[0].(*messaging_api.FlexMessage)
	require.True(t, ok, "expected a flex message, got %T", msgs[0])
	bubble, ok := flex.Contents.(*messaging_api.FlexBubble)
	require.True(t, ok)
	return bubble
}

func textOf(t *testing.T, msgs []messaging_api.MessageInterface) string {
	t.Helper()
	require.Len(t, msgs, 1)
	txt, ok := msgs[0].(*messaging_api.TextMessage)
	require.True(t, ok, "expected a text message, got %T", msgs[0])
	return txt.Text
}

func TestFormatBaht(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		750:     "750",
		12500:   "12,500",
		1234567: "1,234,567",
		1250.5:  "1,250.5",
		-12500:  "-12,500",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBaht(in))
	}
}

func TestStatusLabelFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "รอชำระเงินมัดจำ", StatusLabel(model.BookingPendingPayment))
	assert.Equal(t, "some_future_status", StatusLabel("some_future_status"))
}

func TestFollowEventGetsWelcome(t *testing.T) {
	bot := NewBot(&fakePrices{}, &fakeBookings{}, nil, "https://farm.example.com")
	msgs := bot.HandleEvent(context.Background(), Event{Type: EventFollow})
	bubble := bubbleOf(t, msgs)
	require.NotNil(t, bubble.Footer)
	assert.Len(t, bubble.Footer.Contents, 3)
}

func TestNonTextMessageIsIgnored(t *testing.T) {
	bot := NewBot(&fakePrices{}, &fakeBookings{}, nil, "")
	assert.Nil(t, bot.HandleEvent(context.Background(), Event{Type: EventMessage}))
	assert.Nil(t, bot.HandleEvent(context.Background(), Event{
		Type:    EventMessage,
		Message: &Message{Type: "sticker"},
	}))
}

func TestPriceCardRows(t *testing.T) {
	crops := []model.CropType{{Name: "นาข้าว", PricePerRai: 50}}
	sprays := []model.SprayType{{Name: "ฮอร์โมน", PricePerRai: 100}}
	bubble := bubbleOf(t, ComposePriceCard(crops, sprays, "https://farm.example.com"))

	// section, crop row, separator, section, spray row
	require.Len(t, bubble.Body.Contents, 5)
	row, ok := bubble.Body.Contents[1].(*messaging_api.FlexBox)
	require.True(t, ok)
	rate, ok := row.Contents[1].(*messaging_api.FlexText)
	require.True(t, ok)
	assert.Equal(t, "50 บาท/ไร่", rate.Text)

	btn, ok := bubble.Footer.Contents[0].(*messaging_api.FlexButton)
	require.True(t, ok)
	uri, ok := btn.Action.(*messaging_api.UriAction)
	require.True(t, ok)
	assert.Equal(t, "https://farm.example.com/booking", uri.Uri)
}

func TestPriceCardEmptyFallsBackToText(t *testing.T) {
	msgs := ComposePriceCard(nil, nil, "")
	assert.Contains(t, textOf(t, msgs), "ยังไม่มีข้อมูลอัตราค่าบริการ")
}

func TestStatusCommandRendersLatestBooking(t *testing.T) {
	bk := &model.Booking{
		ID:         42,
		CropName:   "อ้อย",
		SprayName:  "ยาฆ่าหญ้า",
		AreaRai:    12,
		TotalPrice: 3000,
		Deposit:    900,
		Status:     model.BookingPaid,
	}
	bot := NewBot(&fakePrices{}, &fakeBookings{latest: bk}, nil, "https://farm.example.com")
	msgs := bot.HandleEvent(context.Background(), Event{
		Type:    EventMessage,
		Source:  Source{UserID: "U123"},
		Message: &Message{Type: "text", Text: "สถานะ"},
	})
	bubble := bubbleOf(t, msgs)

	last, ok := bubble.Body.Contents[len(bubble.Body.Contents)-1].(*messaging_api.FlexBox)
	require.True(t, ok)
	label, ok := last.Contents[1].(*messaging_api.FlexText)
	require.True(t, ok)
	assert.Equal(t, "ชำระเงินแล้ว", label.Text)
}

func TestStatusCommandWithoutBookings(t *testing.T) {
	bot := NewBot(&fakePrices{}, &fakeBookings{}, nil, "")
	msgs := bot.HandleEvent(context.Background(), Event{
		Type:    EventMessage,
		Source:  Source{UserID: "U123"},
		Message: &Message{Type: "text", Text: "สถานะ"},
	})
	assert.Contains(t, textOf(t, msgs), "ไม่พบรายการจอง")
}

// Data source failures degrade to the not-found branch instead of
// surfacing an error in chat.
func TestStatusCommandSwallowsLookupError(t *testing.T) {
	bot := NewBot(&fakePrices{}, &fakeBookings{err: errors.New("db down")}, nil, "")
	msgs := bot.HandleEvent(context.Background(), Event{
		Type:    EventMessage,
		Source:  Source{UserID: "U123"},
		Message: &Message{Type: "text", Text: "สถานะ"},
	})
	assert.Contains(t, textOf(t, msgs), "ไม่พบรายการจอง")
}

func TestHistoryCardListsBookings(t *testing.T) {
	recent := []model.Booking{
		{ID: 2, CropName: "นาข้าว", SprayName: "ปุ๋ย", AreaRai: 5, TotalPrice: 750, Status: model.BookingCompleted},
		{ID: 1, CropName: "อ้อย", SprayName: "ฮอร์โมน", AreaRai: 10, TotalPrice: 2000, Status: model.BookingCancelled},
	}
	bot := NewBot(&fakePrices{}, &fakeBookings{recent: recent}, nil, "")
	msgs := bot.HandleEvent(context.Background(), Event{
		Type:    EventMessage,
		Source:  Source{UserID: "U123"},
		Message: &Message{Type: "text", Text: "ประวัติ"},
	})
	bubble := bubbleOf(t, msgs)
	// two bookings, two lines each, one separator between them
	assert.Len(t, bubble.Body.Contents, 5)
}

func TestAIAnswerAndFallback(t *testing.T) {
	question := Event{
		Type:    EventMessage,
		Source:  Source{UserID: "U123"},
		Message: &Message{Type: "text", Text: "ทำไมต้องบินตอนเช้า"},
	}

	bot := NewBot(&fakePrices{}, &fakeBookings{}, &fakeAI{answer: "ลมสงบและแดดยังไม่แรงค่ะ"}, "")
	assert.Equal(t, "ลมสงบและแดดยังไม่แรงค่ะ", textOf(t, bot.HandleEvent(context.Background(), question)))

	bot = NewBot(&fakePrices{}, &fakeBookings{}, &fakeAI{err: errors.New("timeout")}, "")
	assert.Equal(t, aiFallbackText, textOf(t, bot.HandleEvent(context.Background(), question)))

	bot = NewBot(&fakePrices{}, &fakeBookings{}, nil, "")
	assert.Equal(t, aiFallbackText, textOf(t, bot.HandleEvent(context.Background(), question)))
}
