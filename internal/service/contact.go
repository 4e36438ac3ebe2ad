package service

import (
	"context"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/validation"
)

type contactService struct {
	contactRepo repository.ContactRepository
	email       EmailService
}

func NewContactService(contactRepo repository.ContactRepository, email EmailService) ContactService {
	return &contactService{contactRepo: contactRepo, email: email}
}

// Submit stores a lead from the public site and notifies the admin. A failed
// notification does not fail the submission.
func (s *contactService) Submit(ctx context.Context, input domain.ContactInput) (*domain.ContactSubmission, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	c := &domain.ContactSubmission{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
	}
	if err := s.contactRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	if err := s.email.SendContactNotification(ctx, c); err != nil {
		logger.FromContext(ctx).Warn("Failed to send contact notification", "contactID", c.ID, "error", err)
	}
	return c, nil
}

func (s *contactService) ListSubmissions(ctx context.Context, status domain.ContactStatus) ([]domain.ContactSubmission, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.NewValidationError("unknown contact status %q", status)
	}
	return s.contactRepo.List(ctx, status)
}

func (s *contactService) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("unknown contact status %q", status)
	}
	return s.contactRepo.UpdateStatus(ctx, id, status)
}
