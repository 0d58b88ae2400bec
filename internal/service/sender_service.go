package service

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	"github.com/Bejayyyy/Rentalss-sub001/internal/logging"
)

// SenderService composes and dispatches booking notifications over email and
// SMS. Both channels are fire-and-forget; a delivery failure is logged and
// never propagated to the reservation or transition that triggered it.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) NotifyBookingStatus(booking entities.BookingResponse) {
	emailData := entities.BookingEmailData{
		CustomerName:   booking.CustomerName,
		BookingCode:    booking.Code,
		VehicleName:    booking.VehicleName,
		Color:          booking.Color,
		PlateNumber:    booking.PlateNumber,
		PickupLocation: booking.PickupLocation,
		StartDate:      booking.StartDate,
		EndDate:        booking.EndDate,
		TotalPrice:     fmt.Sprintf("%.2f", booking.TotalPrice),
		Status:         booking.Status,
		CurrentYear:    time.Now().UTC().Year(),
	}

	subject := fmt.Sprintf("Your Rentalss booking is %s - Code: %s", booking.Status, booking.Code)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking with Rentalss is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Vehicle: %s (%s, Plate: %s)\n"+
			"Pickup: %s\n"+
			"From: %s\n"+
			"To: %s\n"+
			"Total: %s\n\n"+
			"Thank you for choosing Rentalss.",
		emailData.CustomerName, emailData.Status, emailData.BookingCode,
		emailData.VehicleName, emailData.Color, emailData.PlateNumber,
		emailData.PickupLocation, emailData.StartDate, emailData.EndDate,
		emailData.TotalPrice,
	)

	htmlBody := s.renderEmailTemplate(emailData)

	go func(toEmail, toName, subject, plainBody, htmlBody string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody); err != nil {
			logging.Warn("booking email delivery failed",
				"booking_code", emailData.BookingCode, "error", err.Error())
		}
	}(booking.CustomerEmail, booking.CustomerName, subject, plainTextBody, htmlBody)

	smsMessage := fmt.Sprintf("Rentalss: booking %s is %s. Pickup %s on %s. Details in your email.",
		booking.Code, booking.Status, booking.PickupLocation, booking.StartDate)

	go func(toPhone, body string) {
		if err := SendSMS(toPhone, body); err != nil {
			logging.Warn("booking SMS delivery failed",
				"booking_code", emailData.BookingCode, "error", err.Error())
		}
	}(booking.CustomerPhone, smsMessage)
}

func (s *SenderService) renderEmailTemplate(data entities.BookingEmailData) string {
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		logging.Warn("could not parse booking email template", "path", tmplPath, "error", err.Error())
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logging.Warn("could not render booking email template",
			"booking_code", data.BookingCode, "error", err.Error())
		return ""
	}
	return buf.String()
}
