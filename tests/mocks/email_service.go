package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *EmailService) SendAdoptionApprovedEmail(ctx context.Context, toEmail, name, petName string) error {
	args := m.Called(ctx, toEmail, name, petName)
	return args.Error(0)
}
