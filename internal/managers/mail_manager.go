// Package managers handles the sending of emails for account and adoption
// confirmations using the Mailgun service and the Hermes package for email formatting.
package managers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"
)

// MailMgr is an interface that outlines the contract for email management.
// It includes methods for sending welcome and adoption confirmation emails.
type MailMgr interface {
	SendWelcomeMail(email, name string) error
	SendAdoptionMail(email, name, schoolName string) error
}

// MailManager is a concrete implementation of the MailMgr interface.
// It uses the Mailgun service for sending emails and the Hermes package for formatting emails.
type MailManager struct {
	Hermes  *hermes.Hermes
	Mailgun *mailgun.MailgunImpl
}

var from = "Adopt-a-School <team@mail.adopt-a-school.org>"
var environment string

// SendWelcomeMail sends a welcome email to a freshly registered user.
// The email content is formatted using the Hermes package and sent using the Mailgun service.
func (mm *MailManager) SendWelcomeMail(email, name string) error {
	if environment != "production" {
		log.Info("Skipping welcome mail in development mode")
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: name,
			Intros: []string{
				"Welcome to Adopt-a-School! We're very excited to have you on board.",
				"Browse the school map, pick a school that is close to your heart and start your prayer journal.",
			},
			Outros: []string{
				"If you have any questions, feel free to reach out to us at any time via team@mail.adopt-a-school.org.",
			},
		},
	}

	return mm.send(mailBody, "Welcome to Adopt-a-School", email)
}

// SendAdoptionMail sends a confirmation email after a successful school adoption.
func (mm *MailManager) SendAdoptionMail(email, name, schoolName string) error {
	if environment != "production" {
		log.Info("Skipping adoption mail in development mode")
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: name,
			Intros: []string{
				fmt.Sprintf("You have adopted %s!", schoolName),
				"The school is now yours to pray for. Your adoption journal is ready for its first entry.",
			},
			Outros: []string{
				"Thank you for standing with your school.",
			},
		},
	}

	return mm.send(mailBody, fmt.Sprintf("You adopted %s", schoolName), email)
}

func (mm *MailManager) send(mailBody hermes.Email, subject, email string) error {
	emailBody, err := mm.Hermes.GenerateHTML(mailBody)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(2*time.Second))
	defer cancel()

	message := mm.Mailgun.NewMessage(from, subject, "", email)
	message.SetHtml(emailBody)
	if _, _, err = mm.Mailgun.Send(ctx, message); err != nil {
		log.Warning("Error sending mail: " + err.Error())
		return err
	}
	log.Debug("Mail sent to ", email)

	return nil
}

// NewMailManager initializes a new MailManager instance with configured Mailgun and Hermes settings.
// It also checks the runtime environment to determine if emails should be sent.
// This function is used during the initialization phase of the application.
func NewMailManager() MailMgr {
	log.Info("Initializing mail manager")
	// Check if running in production
	environment = os.Getenv("ENVIRONMENT")

	if environment != "production" {
		log.Println("Running in development mode, email will not be sent to users")
	}

	apiKey := os.Getenv("MAILGUN_API_KEY")
	mailgunInstance := mailgun.NewMailgun("mail.adopt-a-school.org", apiKey)
	mailgunInstance.SetAPIBase(mailgun.APIBaseEU)

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name:        "Adopt-a-School",
				Link:        "https://adopt-a-school.org/",
				Copyright:   "© Adopt-a-School",
				TroubleText: "If you’re having trouble with the button '{ACTION}', copy and paste the URL below into your web browser.",
			},
		},
		Mailgun: mailgunInstance,
	}
	log.Info("Initialized mail manager")
	return mm
}
