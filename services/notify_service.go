package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lodge-backend/metrics"
	"lodge-backend/models"
	"lodge-backend/utils"
)

// NotifyResult reports which channels actually went out.
type NotifyResult struct {
	GuestSent bool `json:"guestSent"`
	AdminSent bool `json:"adminSent"`
}

// NotifyDispatcher fans a new booking out to the guest (email), the lodge
// admin (email) and an optional staff Telegram chat. Every channel is
// best-effort: failures are logged and counted, never propagated.
type NotifyDispatcher struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifyDispatcher wires the Telegram channel when TELEGRAM_BOT_TOKEN and
// TELEGRAM_STAFF_CHAT_ID are set; email needs no setup beyond SMTP env vars.
func NewNotifyDispatcher() *NotifyDispatcher {
	d := &NotifyDispatcher{}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chat := os.Getenv("TELEGRAM_STAFF_CHAT_ID")
	if token == "" || chat == "" {
		return d
	}

	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		log.Printf("warning: bad TELEGRAM_STAFF_CHAT_ID %q: %v", chat, err)
		return d
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("warning: telegram bot init failed, alerts disabled: %v", err)
		return d
	}
	d.bot = bot
	d.chatID = chatID
	log.Printf("Telegram staff alerts enabled (bot @%s)", bot.Self.UserName)
	return d
}

func emailData(b models.Booking) utils.BookingEmailData {
	paymentID := ""
	if b.PaymentID != nil {
		paymentID = *b.PaymentID
	}
	return utils.BookingEmailData{
		BookingRef:    b.BookingRef,
		LodgeName:     b.LodgeName,
		RoomName:      b.RoomName,
		GuestName:     b.CustomerName,
		GuestEmail:    b.CustomerEmail,
		GuestPhone:    b.CustomerMobile,
		CheckIn:       b.CheckIn.Format("2006-01-02"),
		CheckOut:      b.CheckOut.Format("2006-01-02"),
		Guests:        b.Guests,
		RoomUnits:     b.RoomUnits,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,
		PaymentID:     paymentID,
	}
}

// BookingCreated sends the confirmation fan-out for a freshly created booking.
func (d *NotifyDispatcher) BookingCreated(b models.Booking, adminEmail string) NotifyResult {
	data := emailData(b)
	var res NotifyResult

	if b.CustomerEmail != "" {
		if err := utils.SendBookingConfirmationEmail(data); err != nil {
			log.Printf("guest confirmation email failed for %s: %v", b.BookingRef, err)
			metrics.NotificationsSent.WithLabelValues("email_guest", "error").Inc()
		} else {
			res.GuestSent = true
			metrics.NotificationsSent.WithLabelValues("email_guest", "ok").Inc()
		}
	}

	if adminEmail != "" {
		if err := utils.SendBookingAlertEmail(adminEmail, data); err != nil {
			log.Printf("admin alert email failed for %s: %v", b.BookingRef, err)
			metrics.NotificationsSent.WithLabelValues("email_admin", "error").Inc()
		} else {
			res.AdminSent = true
			metrics.NotificationsSent.WithLabelValues("email_admin", "ok").Inc()
		}
	}

	d.telegramAlert(b)
	return res
}

func (d *NotifyDispatcher) telegramAlert(b models.Booking) {
	if d.bot == nil {
		return
	}
	text := fmt.Sprintf("New booking %s\n%s - %s x%d\n%s to %s, %d guests\n%s, %.2f (%s)",
		b.BookingRef, b.LodgeName, b.RoomName, b.RoomUnits,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), b.Guests,
		b.PaymentMethod, b.TotalAmount, b.PaymentStatus,
	)
	if _, err := d.bot.Send(tgbotapi.NewMessage(d.chatID, text)); err != nil {
		log.Printf("telegram alert failed for %s: %v", b.BookingRef, err)
		metrics.NotificationsSent.WithLabelValues("telegram", "error").Inc()
		return
	}
	metrics.NotificationsSent.WithLabelValues("telegram", "ok").Inc()
}
