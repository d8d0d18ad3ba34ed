package utils

import (
	"crowdfund/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP relay.
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.MailFrom == "" || cfg.MailPass == "" {
		log.Println("Mail credentials not configured, skipping email to", strings.Join(to, ","))
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: %s\r\n", cfg.MailFrom)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", cfg.MailFrom, cfg.MailPass, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, cfg.MailFrom, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendWelcomeEmail sends the post-signup welcome mail. Best effort.
func SendWelcomeEmail(email, firstName string) error {
	subject := "Welcome aboard"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome, %s!</h2>
					<p style="font-size: 16px; color: #555555;">Your account has been created. You can now browse campaigns and take part in escrow-backed purchases.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for joining us.</p>
				</div>
			</body>
		</html>
	`, firstName)

	return SendEmail([]string{email}, subject, body)
}
