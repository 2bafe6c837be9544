package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-server/internal/apperror"
	"github.com/sakif/portfolio-server/internal/model"
	"github.com/sakif/portfolio-server/internal/repository"
)

// MessageService handles contact-form submissions. Append-only: submitting
// is the only operation the application exposes.
type MessageService struct {
	repo   repository.MessageRepository
	logger *slog.Logger
}

func NewMessageService(repo repository.MessageRepository, logger *slog.Logger) *MessageService {
	return &MessageService{
		repo:   repo,
		logger: logger,
	}
}

// Submit validates presence of all three fields and appends the message.
// No format validation beyond presence — a bogus email only wastes the
// sender's time, and spam filtering is explicitly out of scope.
func (s *MessageService) Submit(ctx context.Context, name, email, message string) (*model.Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if message == "" {
		return nil, apperror.ValidationFailed("message", "message is required")
	}

	msg := &model.Message{
		Name:    name,
		Email:   email,
		Message: message,
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("failed to store contact message", slog.String("error", err.Error()))
		return nil, fmt.Errorf("storing message: %w", err)
	}

	s.logger.Info("contact message received",
		slog.String("id", msg.ID),
		slog.String("name", msg.Name),
	)

	return msg, nil
}
