package service

import (
	"context"
	"fmt"
	"time"

	"chorebank-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendPaymentDueReminder(ctx context.Context, email, name string, amountCents int64, dueDate time.Time) error {
	amount := domain.FormatCents(amountCents)
	subject := "Reminder: chore payment due tomorrow"
	plainText := fmt.Sprintf(`Hi %s,

Your chore payment of %s is due on %s.

Pay in the ChoreBank app to keep your kids' rewards flowing.

Thanks,
The ChoreBank Team`, name, amount, dueDate.Format("January 2, 2006"))
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Payment due tomorrow</h2>
				<p>Hi %s,</p>
				<p>Your chore payment of <strong>%s</strong> is due on <strong>%s</strong>.</p>
				<p>Pay in the ChoreBank app to keep your kids' rewards flowing.</p>
			</body>
		</html>
	`, name, amount, dueDate.Format("January 2, 2006"))

	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendPaymentOverdueNotice(ctx context.Context, email, name string, amountCents int64) error {
	amount := domain.FormatCents(amountCents)
	subject := "Your chore payment is overdue"
	plainText := fmt.Sprintf(`Hi %s,

Your chore payment of %s is now overdue. Creating new chores and expenses
is paused until the payment is made.

Thanks,
The ChoreBank Team`, name, amount)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Payment overdue</h2>
				<p>Hi %s,</p>
				<p>Your chore payment of <strong>%s</strong> is now overdue.</p>
				<p>Creating new chores and expenses is paused until the payment is made.</p>
			</body>
		</html>
	`, name, amount)

	return s.send(email, name, subject, plainText, htmlContent)
}
