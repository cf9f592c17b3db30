package line

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/kasetlink/drone-spray-booking/internal/ai"
	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// PriceSource supplies the active pricing rows for the price card.
type PriceSource interface {
	ListActiveCrops(ctx context.Context) ([]model.CropType, error)
	ListActiveSprays(ctx context.Context) ([]model.SprayType, error)
}

// BookingSource supplies the caller's bookings for the status and
// history cards.
type BookingSource interface {
	LatestByLineUser(ctx context.Context, lineUserID string) (*model.Booking, error)
	RecentByLineUser(ctx context.Context, lineUserID string, limit int) ([]model.Booking, error)
}

// Bot routes verified webhook events and composes the response messages.
// Data failures never surface to the chat: a missing booking or an empty
// price list renders as a "not found" branch instead of an error.
type Bot struct {
	Prices   PriceSource
	Bookings BookingSource
	AI       ai.Client
	BaseURL  string // public base URL of the LIFF web app, no trailing slash
}

// NewBot wires a Bot from its data sources. baseURL is used to build the
// deep links on card footers.
func NewBot(prices PriceSource, bookings BookingSource, aiClient ai.Client, baseURL string) *Bot {
	return &Bot{Prices: prices, Bookings: bookings, AI: aiClient, BaseURL: strings.TrimRight(baseURL, "/")}
}

// HandleEvent turns one webhook event into zero or more outbound
// messages. A follow event always gets the welcome card regardless of
// text; message events are dispatched through RouteText. Unsupported
// event or message types produce no messages.
func (b *Bot) HandleEvent(ctx context.Context, ev Event) []messaging_api.MessageInterface {
	switch ev.Type {
	case EventFollow:
		return b.welcomeMessages()
	case EventMessage:
		if ev.Message == nil || ev.Message.Type != "text" {
			return nil
		}
		return b.handleText(ctx, ev.Source.UserID, ev.Message.Text)
	}
	return nil
}

func (b *Bot) handleText(ctx context.Context, lineUserID, text string) []messaging_api.MessageInterface {
	switch RouteText(text) {
	case IntentBooking:
		return b.bookingMessages()
	case IntentRental:
		return b.rentalMessages()
	case IntentHistory:
		return b.historyMessages(ctx, lineUserID)
	case IntentStatus:
		return b.statusMessages(ctx, lineUserID)
	case IntentPrice:
		return b.priceMessages(ctx)
	case IntentHelp:
		return helpMessages()
	case IntentAI:
		return b.aiMessages(ctx, text)
	default:
		return b.welcomeMessages()
	}
}

// ----- status labels -----

// statusLabels maps booking status codes to the Thai labels shown in
// chat. ComposeStatusLabel falls back to the raw code for anything
// unmapped so new statuses never crash the composer.
var statusLabels = map[string]string{
	model.BookingPendingPayment: "รอชำระเงินมัดจำ",
	model.BookingPaid:           "ชำระเงินแล้ว",
	model.BookingAssigned:       "มอบหมายทีมงานแล้ว",
	model.BookingInProgress:     "กำลังฉีดพ่น",
	model.BookingCompleted:      "เสร็จสิ้น",
	model.BookingCancelled:      "ยกเลิกแล้ว",
}

// StatusLabel returns the Thai display label for a booking status, or
// the raw status string when it is not in the table.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// FormatBaht renders an amount with thousands separators and no trailing
// zero padding: 750 -> "750", 12500 -> "12,500", 1250.5 -> "1,250.5".
func FormatBaht(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var out strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(d)
	}
	res := out.String()
	if hasFrac {
		res += "." + fracPart
	}
	if neg {
		res = "-" + res
	}
	return res
}

// ----- per-intent composition -----

// ComposePriceCard builds the service-rate card from the active pricing
// rows. Each row renders as "<rate> บาท/ไร่". Empty inputs yield the
// not-found text branch instead of an empty card.
func ComposePriceCard(crops []model.CropType, sprays []model.SprayType, baseURL string) []messaging_api.MessageInterface {
	if len(crops) == 0 && len(sprays) == 0 {
		return TextMessages("ยังไม่มีข้อมูลอัตราค่าบริการในระบบ กรุณาติดต่อเจ้าหน้าที่")
	}
	contents := []messaging_api.FlexComponentInterface{
		sectionText("พืช"),
	}
	for _, c := range crops {
		contents = append(contents, priceRow(c.Name, c.PricePerRai))
	}
	contents = append(contents,
		&messaging_api.FlexSeparator{Margin: "md"},
		sectionText("ประเภทการฉีดพ่น"),
	)
	for _, s := range sprays {
		contents = append(contents, priceRow(s.Name, s.PricePerRai))
	}
	bubble := &messaging_api.FlexBubble{
		Header: headerBox("อัตราค่าบริการฉีดพ่นโดรน"),
		Body: &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Spacing:  "sm",
			Contents: contents,
		},
		Footer: footerBox(&messaging_api.FlexButton{
			Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
			Action: &messaging_api.UriAction{Label: "จองคิวฉีดพ่น", Uri: baseURL + "/booking"},
		}),
	}
	return []messaging_api.MessageInterface{
		&messaging_api.FlexMessage{AltText: "อัตราค่าบริการฉีดพ่นโดรน", Contents: bubble},
	}
}

// ComposeStatusCard builds the latest-booking status card. A nil booking
// renders the not-found branch.
func ComposeStatusCard(bk *model.Booking, baseURL string) []messaging_api.MessageInterface {
	if bk == nil {
		return TextMessages("ไม่พบรายการจองของคุณ หากต้องการจองคิวฉีดพ่น พิมพ์ \"จอง\" ได้เลยค่ะ")
	}
	contents := []messaging_api.FlexComponentInterface{
		kvRow("หมายเลขจอง", fmt.Sprintf("#%d", bk.ID)),
		kvRow("พืช", bk.CropName),
		kvRow("การฉีดพ่น", bk.SprayName),
		kvRow("พื้นที่", FormatBaht(bk.AreaRai)+" ไร่"),
		kvRow("ยอดรวม", FormatBaht(bk.TotalPrice)+" บาท"),
		kvRow("มัดจำ", FormatBaht(bk.Deposit)+" บาท"),
		&messaging_api.FlexSeparator{Margin: "md"},
		kvRow("สถานะ", StatusLabel(bk.Status)),
	}
	bubble := &messaging_api.FlexBubble{
		Header: headerBox("สถานะการจองล่าสุด"),
		Body: &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Spacing:  "sm",
			Contents: contents,
		},
		Footer: footerBox(&messaging_api.FlexButton{
			Style:  messaging_api.FlexButtonSTYLE_LINK,
			Action: &messaging_api.MessageAction{Label: "ดูประวัติทั้งหมด", Text: "ประวัติ"},
		}),
	}
	return []messaging_api.MessageInterface{
		&messaging_api.FlexMessage{AltText: "สถานะการจองล่าสุด", Contents: bubble},
	}
}

// ComposeHistoryCard lists recent bookings, newest first.
func ComposeHistoryCard(list []model.Booking) []messaging_api.MessageInterface {
	if len(list) == 0 {
		return TextMessages("ยังไม่มีประวัติการจองค่ะ พิมพ์ \"จอง\" เพื่อเริ่มจองคิวแรกของคุณ")
	}
	contents := make([]messaging_api.FlexComponentInterface, 0, len(list)*2)
	for i, bk := range list {
		if i > 0 {
			contents = append(contents, &messaging_api.FlexSeparator{Margin: "sm"})
		}
		line1 := fmt.Sprintf("#%d %s • %s", bk.ID, bk.CropName, bk.SprayName)
		line2 := fmt.Sprintf("%s ไร่ • %s บาท • %s", FormatBaht(bk.AreaRai), FormatBaht(bk.TotalPrice), StatusLabel(bk.Status))
		contents = append(contents,
			&messaging_api.FlexText{Text: line1, Weight: messaging_api.FlexTextWEIGHT_BOLD, Size: "sm", Wrap: true},
			&messaging_api.FlexText{Text: line2, Size: "xs", Color: "#888888", Wrap: true},
		)
	}
	bubble := &messaging_api.FlexBubble{
		Header: headerBox("ประวัติการจอง"),
		Body: &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Spacing:  "sm",
			Contents: contents,
		},
	}
	return []messaging_api.MessageInterface{
		&messaging_api.FlexMessage{AltText: "ประวัติการจอง", Contents: bubble},
	}
}

func (b *Bot) priceMessages(ctx context.Context) []messaging_api.MessageInterface {
	crops, err := b.Prices.ListActiveCrops(ctx)
	if err != nil {
		log.Printf("line: list crops failed: %v", err)
		crops = nil
	}
	sprays, err := b.Prices.ListActiveSprays(ctx)
	if err != nil {
		log.Printf("line: list sprays failed: %v", err)
		sprays = nil
	}
	return ComposePriceCard(crops, sprays, b.BaseURL)
}

func (b *Bot) statusMessages(ctx context.Context, lineUserID string) []messaging_api.MessageInterface {
	bk, err := b.Bookings.LatestByLineUser(ctx, lineUserID)
	if err != nil {
		log.Printf("line: latest booking lookup failed: %v", err)
		bk = nil
	}
	return ComposeStatusCard(bk, b.BaseURL)
}

func (b *Bot) historyMessages(ctx context.Context, lineUserID string) []messaging_api.MessageInterface {
	list, err := b.Bookings.RecentByLineUser(ctx, lineUserID, 5)
	if err != nil {
		log.Printf("line: booking history lookup failed: %v", err)
		list = nil
	}
	return ComposeHistoryCard(list)
}

func (b *Bot) bookingMessages() []messaging_api.MessageInterface {
	bubble := &messaging_api.FlexBubble{
		Header: headerBox("จองคิวฉีดพ่นโดรน"),
		Body: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{Text: "กรอกแบบฟอร์มจองคิว เลือกพืช ประเภทการฉีดพ่น และวันเวลาที่สะดวก ระบบจะคำนวณราคาให้ทันที", Size: "sm", Wrap: true},
			},
		},
		Footer: footerBox(
			&messaging_api.FlexButton{
				Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
				Action: &messaging_api.UriAction{Label: "เปิดแบบฟอร์มจอง", Uri: b.BaseURL + "/booking"},
			},
			&messaging_api.FlexButton{
				Style:  messaging_api.FlexButtonSTYLE_LINK,
				Action: &messaging_api.MessageAction{Label: "ดูราคาก่อน", Text: "ราคา"},
			},
		),
	}
	return []messaging_api.MessageInterface{
		&messaging_api.FlexMessage{AltText: "จองคิวฉีดพ่นโดรน", Contents: bubble},
	}
}

func (b *Bot) rentalMessages() []messaging_api.MessageInterface {
	bubble := &messaging_api.FlexBubble{
		Header: headerBox("เช่าอุปกรณ์การเกษตร"),
		Body: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{Text: "เครื่องพ่นยา ปั๊มน้ำ และอุปกรณ์อื่น ๆ พร้อมให้เช่ารายวัน ดูรายการและจองได้จากหน้าเว็บ", Size: "sm", Wrap: true},
			},
		},
		Footer: footerBox(&messaging_api.FlexButton{
			Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
			Action: &messaging_api.UriAction{Label: "ดูอุปกรณ์ให้เช่า", Uri: b.BaseURL + "/rental"},
		}),
	}
	return []messaging_api.MessageInterface{
		&messaging_api.FlexMessage{AltText: "เช่าอุปกรณ์การเกษตร", Contents: bubble},
	}
}

func helpMessages() []messaging_api.MessageInterface {
	return TextMessages("พิมพ์คำเหล่านี้ได้เลยค่ะ\n" +
		"• \"จอง\" – จองคิวฉีดพ่นโดรน\n" +
		"• \"เช่า\" – เช่าอุปกรณ์การเกษตร\n" +
		"• \"ราคา\" – ดูอัตราค่าบริการ\n" +
		"• \"สถานะ\" – เช็คสถานะการจองล่าสุด\n" +
		"• \"ประวัติ\" – ดูประวัติการจอง\n" +
		"หรือพิมพ์คำถามเกี่ยวกับการฉีดพ่น เดี๋ยวระบบช่วยตอบให้ค่ะ")
}

func (b *Bot) welcomeMessages() []messaging_api.MessageInterface {
	bubble := &messaging_api.FlexBubble{
		Header: headerBox("สวัสดีค่ะ 🌾"),
		Body: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{Text: "บริการฉีดพ่นโดรนและตลาดจ้างงานการเกษตร เลือกเมนูด้านล่างหรือพิมพ์ \"ช่วยเหลือ\" ดูคำสั่งทั้งหมด", Size: "sm", Wrap: true},
			},
		},
		Footer: footerBox(
			&messaging_api.FlexButton{
				Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
				Action: &messaging_api.MessageAction{Label: "จองคิวฉีดพ่น", Text: "จอง"},
			},
			&messaging_api.FlexButton{
				Style:  messaging_api.FlexButtonSTYLE_SECONDARY,
				Action: &messaging_api.MessageAction{Label: "ดูราคา", Text: "ราคา"},
			},
			&messaging_api.FlexButton{
				Style:  messaging_api.FlexButtonSTYLE_LINK,
				Action: &messaging_api.MessageAction{Label: "เช่าอุปกรณ์", Text: "เช่า"},
			},
		),
	}
	return []messaging_api.MessageInterface{
		&messaging_api.FlexMessage{AltText: "ยินดีต้อนรับ", Contents: bubble},
	}
}

// aiFallbackText is sent when the language model is unavailable or
// returns nothing usable.
const aiFallbackText = "ขออภัยค่ะ ตอนนี้ระบบตอบคำถามอัตโนมัติไม่พร้อมใช้งาน พิมพ์ \"ช่วยเหลือ\" เพื่อดูคำสั่ง หรือติดต่อเจ้าหน้าที่ได้เลยค่ะ"

func (b *Bot) aiMessages(ctx context.Context, question string) []messaging_api.MessageInterface {
	if b.AI == nil {
		return TextMessages(aiFallbackText)
	}
	answer, err := b.AI.Answer(ctx, question)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("line: ai answer failed: %v", err)
		}
		return TextMessages(aiFallbackText)
	}
	return TextMessages(answer)
}

// ----- flex building blocks -----

func headerBox(title string) *messaging_api.FlexBox {
	return &messaging_api.FlexBox{
		Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
		Contents: []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{Text: title, Weight: messaging_api.FlexTextWEIGHT_BOLD, Size: "lg", Color: "#1B5E20"},
		},
	}
}

func footerBox(buttons ...messaging_api.FlexComponentInterface) *messaging_api.FlexBox {
	return &messaging_api.FlexBox{
		Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
		Spacing:  "sm",
		Contents: buttons,
	}
}

func sectionText(title string) *messaging_api.FlexText {
	return &messaging_api.FlexText{Text: title, Weight: messaging_api.FlexTextWEIGHT_BOLD, Size: "sm", Color: "#666666", Margin: "md"}
}

func priceRow(name string, rate float64) *messaging_api.FlexBox {
	return &messaging_api.FlexBox{
		Layout: messaging_api.FlexBoxLAYOUT_HORIZONTAL,
		Contents: []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{Text: name, Size: "sm", Wrap: true},
			&messaging_api.FlexText{Text: FormatBaht(rate) + " บาท/ไร่", Size: "sm", Align: messaging_api.FlexTextALIGN_END, Color: "#1B5E20"},
		},
	}
}

func kvRow(key, value string) *messaging_api.FlexBox {
	return &messaging_api.FlexBox{
		Layout: messaging_api.FlexBoxLAYOUT_HORIZONTAL,
		Contents: []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{Text: key, Size: "sm", Color: "#888888"},
			&messaging_api.FlexText{Text: value, Size: "sm", Align: messaging_api.FlexTextALIGN_END, Wrap: true},
		},
	}
}

// TextMessages wraps plain strings as LINE text messages. Exported for
// the notification consumer, which sends text-only pushes.
func TextMessages(texts ...string) []messaging_api.MessageInterface {
	msgs := make([]messaging_api.MessageInterface, 0, len(texts))
	for _, t := range texts {
		msgs = append(msgs, &messaging_api.TextMessage{Text: t})
	}
	return msgs
}
