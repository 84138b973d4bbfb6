package utils

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendEmail sends a plain-text email through the configured SMTP server.
// Returns an error when SMTP is unconfigured; callers treat email as
// best effort and log instead of failing the request.
func SendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	if smtpHost == "" || smtpUser == "" {
		return errors.New("SMTP is not configured")
	}

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}

// SendBookingConfirmationEmail mails the customer their booking reference
// after a successful creation.
func SendBookingConfirmationEmail(to, fullName, bookingID, serviceName string, fee float64) {
	subject := fmt.Sprintf("Booking Confirmed - %s", bookingID)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking for %s has been created successfully.\n\nBooking Reference: %s\nService Fee: %.2f\n\nYou can track the status of your booking anytime using this reference.\n\nBest regards,\n1Point 1Solution",
		fullName, serviceName, bookingID, fee,
	)
	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("Failed to send booking confirmation email for %s: %v", bookingID, err)
	}
}

// SendBookingUpdateEmail mails the customer when an admin posts a
// notification or status update on their booking.
func SendBookingUpdateEmail(to, fullName, bookingID, message string) {
	subject := fmt.Sprintf("Update on your booking %s", bookingID)
	body := fmt.Sprintf(
		"Dear %s,\n\n%s\n\nBooking Reference: %s\n\nBest regards,\n1Point 1Solution",
		fullName, message, bookingID,
	)
	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("Failed to send booking update email for %s: %v", bookingID, err)
	}
}
