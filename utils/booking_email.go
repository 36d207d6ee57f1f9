package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// BookingEmailData carries everything the confirmation/alert templates need.
type BookingEmailData struct {
	BookingRef    string
	LodgeName     string
	RoomName      string
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	CheckIn       string
	CheckOut      string
	Guests        int
	RoomUnits     int
	TotalAmount   float64
	PaymentMethod string
	PaymentStatus string
	PaymentID     string
}

func smtpConfigured() bool {
	return os.Getenv("SMTP_HOST") != "" && os.Getenv("SMTP_PORT") != "" &&
		os.Getenv("SMTP_USERNAME") != "" && os.Getenv("SMTP_PASSWORD") != ""
}

func sanitizeHeader(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "\r", " "), "\n", " ")
}

func sendMultipart(to, subject, plainBody, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "Lodge Bookings"
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", sanitizeHeader(to)))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return smtp.SendMail(addr, auth, smtpUser, []string{to}, []byte(sb.String()))
}

// BookingSummaryLines renders the shared plain-text body of both emails.
func BookingSummaryLines(d BookingEmailData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking ID: %s\n", d.BookingRef)
	fmt.Fprintf(&sb, "Lodge: %s\n", d.LodgeName)
	fmt.Fprintf(&sb, "Room: %s x%d\n", d.RoomName, d.RoomUnits)
	fmt.Fprintf(&sb, "Stay: %s to %s\n", d.CheckIn, d.CheckOut)
	fmt.Fprintf(&sb, "Guests: %d\n", d.Guests)
	fmt.Fprintf(&sb, "Amount: %.2f\n", d.TotalAmount)
	fmt.Fprintf(&sb, "Payment: %s (%s)\n", d.PaymentMethod, d.PaymentStatus)
	if d.PaymentID != "" {
		fmt.Fprintf(&sb, "Payment ID: %s\n", d.PaymentID)
	}
	return sb.String()
}

// SendBookingConfirmationEmail mails the guest their booking summary.
// When SMTP is not configured, the mail is logged instead of sent so
// development setups keep working.
func SendBookingConfirmationEmail(d BookingEmailData) error {
	if !smtpConfigured() {
		log.Printf("[MOCK EMAIL] guest confirmation to:%s booking:%s", d.GuestEmail, d.BookingRef)
		return nil
	}

	subject := fmt.Sprintf("Booking confirmed - %s (%s)", d.LodgeName, d.BookingRef)
	plain := fmt.Sprintf("Hi %s,\n\nYour booking is confirmed.\n\n%s\nWe look forward to hosting you.\n",
		d.GuestName, BookingSummaryLines(d))

	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
  <h2>Booking confirmed</h2>
  <p>Hi %s,</p>
  <p>Your stay at <strong>%s</strong> is confirmed.</p>
  <pre style="background:#f8fafc;padding:12px;border-radius:6px;">%s</pre>
  <p>We look forward to hosting you.</p>
</div>
</body>
</html>`, d.GuestName, d.LodgeName, BookingSummaryLines(d))

	return sendMultipart(d.GuestEmail, subject, plain, html)
}

// SendBookingAlertEmail mails the lodge admin about a new booking.
func SendBookingAlertEmail(adminEmail string, d BookingEmailData) error {
	if !smtpConfigured() {
		log.Printf("[MOCK EMAIL] admin alert to:%s booking:%s", adminEmail, d.BookingRef)
		return nil
	}

	subject := fmt.Sprintf("New booking %s - %s", d.BookingRef, d.LodgeName)
	plain := fmt.Sprintf("New booking received.\n\n%sGuest: %s\nPhone: %s\nEmail: %s\n",
		BookingSummaryLines(d), d.GuestName, d.GuestPhone, d.GuestEmail)

	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
  <h2>New booking</h2>
  <pre style="background:#f8fafc;padding:12px;border-radius:6px;">%s</pre>
  <p>Guest: %s &lt;%s&gt; %s</p>
</div>
</body>
</html>`, BookingSummaryLines(d), d.GuestName, d.GuestEmail, d.GuestPhone)

	return sendMultipart(adminEmail, subject, plain, html)
}
