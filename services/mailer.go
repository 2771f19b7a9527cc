package services

import (
	"log"

	"MediLink/config"

	gomail "gopkg.in/gomail.v2"
)

/*
* Send a plain-text mail through the configured SMTP server
* Without SMTP credentials the mail is logged and skipped, useful in dev
 */
func SendMail(to string, subject string, body string) error {
	if config.SMTPUser() == "" {
		log.Printf("SMTP not configured, skipping mail to %s: %s", to, subject)
		return nil
	}

	message := gomail.NewMessage()
	message.SetHeader("From", config.MailFrom())
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(config.SMTPHost(), config.SMTPPort(), config.SMTPUser(), config.SMTPPassword())
	if err := dialer.DialAndSend(message); err != nil {
		log.Println("Error from DialAndSend: ", err)
		return err
	}
	return nil
}
