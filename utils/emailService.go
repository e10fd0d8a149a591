package utils

import (
	"fmt"
	"mcan/config"
	"net/smtp"
)

// SendWelcomeEmail sends an email notification when a user registers
func SendWelcomeEmail(email, fullName string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{email}

	subject := "Subject: Welcome to MCAN\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #0b6623; text-align: center;">Welcome to MCAN!</h2>
					<p style="font-size: 16px; color: #555555;">Assalamu alaikum %s,</p>
					<p style="font-size: 16px; color: #555555;">Your account has been created successfully. Once your membership is enrolled you will be able to generate your e-ID card and manage your monthly dues from the portal.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Muslim Corpers' Association of Nigeria</p>
				</div>
			</body>
		</html>
	`, fullName)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}

	fmt.Println("Email sent successfully to", email)
	return nil
}

// SendPaymentReceiptEmail sends a receipt when a dues payment completes
func SendPaymentReceiptEmail(email, fullName string, amount float64, currency, reference string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	to := []string{email}

	subject := "Subject: MCAN Dues Payment Receipt\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #0b6623; text-align: center;">Payment Received</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your dues payment has been confirmed:</p>
					<h3 style="text-align: center; color: #0b6623; margin: 20px 0;">%s %.2f</h3>
					<p style="font-size: 14px; color: #666666; text-align: center;">Reference: %s</p>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Jazakumullahu khairan for your contribution.</p>
				</div>
			</body>
		</html>
	`, fullName, currency, amount, reference)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}

	fmt.Println("Email sent successfully to", email)
	return nil
}
