// File: /services/email_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"ryde-api/config"
)

// EmailService sends friendship notification emails. Failures are logged and
// never propagated to the request path.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendFriendRequestEmail notifies the target user of a new friend request.
func (es *EmailService) SendFriendRequestEmail(toEmail, toName, fromName string) error {
	subject := "Ryde - New Friend Request"
	body := fmt.Sprintf(`Hello %s!

%s sent you a friend request on Ryde.

Open the app to accept or decline the request.

The Ryde Team
This is an automated email, please do not reply.`, toName, fromName)

	return es.send(toEmail, subject, body)
}

// SendRequestAcceptedEmail notifies the requester that the request was
// accepted.
func (es *EmailService) SendRequestAcceptedEmail(toEmail, toName, byName string) error {
	subject := "Ryde - Friend Request Accepted"
	body := fmt.Sprintf(`Hello %s!

%s accepted your friend request on Ryde. You are now friends.

The Ryde Team
This is an automated email, please do not reply.`, toName, byName)

	return es.send(toEmail, subject, body)
}

func (es *EmailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		logrus.WithFields(logrus.Fields{
			"to":      toEmail,
			"subject": subject,
			"error":   err,
		}).Warn("Failed to send notification email")
		return err
	}
	return nil
}
