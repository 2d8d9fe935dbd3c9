package utils

import (
	"campus/config"
	"fmt"
	"log"
	"net/smtp"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendEmail delivers an HTML email. When a SendGrid API key is configured it
// goes through the SendGrid API, otherwise it falls back to gmail SMTP.
func sendEmail(to, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey != "" {
		from := mail.NewEmail("Campus Portal", config.AppConfig.EmailSender)
		receiver := mail.NewEmail("", to)
		message := mail.NewSingleEmail(from, subject, receiver, "", htmlBody)

		client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via SendGrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email, status: %d", resp.StatusCode)
			return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
		}
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	headers := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subject)
	message := []byte(headers + "\n" + htmlBody)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendAdminLoginCode emails the second-factor code for admin sign in
func SendAdminLoginCode(email, code string) error {
	subject := "Admin Sign In Verification Code - Campus Portal"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Campus Portal Admin Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your sign in verification code is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">This code expires in 10 minutes. Do not share it with anyone.</p>
				</div>
			</body>
		</html>
	`, code)

	return sendEmail(email, subject, body)
}

// SendWelcomeEmail sends an email notification after registration
func SendWelcomeEmail(email, userName string) error {
	subject := "Welcome to Campus Portal"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Welcome to Campus Portal!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your account has been created successfully. You can now enrol in units, follow your curriculum and track your progress.</p>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Happy Learning!</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Campus Portal Team</p>
				</div>
			</body>
		</html>
	`, userName)

	return sendEmail(email, subject, body)
}

// SendPasswordResetEmail sends the admin generated password to the user
func SendPasswordResetEmail(email, userName, newPassword string) error {
	subject := "Your Password Has Been Reset - Campus Portal"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Password Reset</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">An administrator has reset your password. Your temporary password is:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">Please sign in and change it immediately.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Campus Portal Team</p>
				</div>
			</body>
		</html>
	`, userName, newPassword)

	return sendEmail(email, subject, body)
}

// SendExamResultEmail notifies a student that their exam was graded
func SendExamResultEmail(email, userName, unitTitle string, score, totalMarks int) error {
	subject := "Exam Submitted - Campus Portal"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Exam Submitted</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your exam for <b>%s</b> has been submitted. Auto-scored marks:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%d / %d</h3>
					<p style="font-size: 14px; color: #666666;">Written answers are reviewed by your lecturer and may change the final score.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Campus Portal Team</p>
				</div>
			</body>
		</html>
	`, userName, unitTitle, score, totalMarks)

	return sendEmail(email, subject, body)
}
