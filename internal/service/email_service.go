package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"pawmarket/internal/config"
)

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendAdoptionApprovedEmail(ctx context.Context, toEmail, name, petName string) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="color: #1d4ed8;">Welcome to PawMarket, %s!</h1>
	<p>Your account is ready. Browse pets looking for a home, or list your own if you run a shelter or shop.</p>
	<p>Happy matching!</p>
	<p style="color: #6b7280; font-size: 12px;">You received this email because an account was registered with this address.</p>
</body>
</html>`, name)

	return s.send(ctx, toEmail, "Welcome to PawMarket", html)
}

func (s *emailService) SendAdoptionApprovedEmail(ctx context.Context, toEmail, name, petName string) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="color: #059669;">Congratulations, %s!</h1>
	<p>Your adoption of <strong>%s</strong> has been approved. The seller will contact you in the chat to arrange the handover.</p>
</body>
</html>`, name, petName)

	return s.send(ctx, toEmail, "Your adoption was approved", html)
}

func (s *emailService) send(ctx context.Context, toEmail, subject, html string) error {
	if s.config.ResendAPIKey == "" {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("PawMarket <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
