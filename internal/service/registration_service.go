package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
)

type registrationClient interface {
	Registration(ctx context.Context) (*models.RegistrationRecord, error)
	Register(ctx context.Context, form map[string]interface{}) error
	UpdateRegistration(ctx context.Context, form map[string]interface{}) error
	Profile(ctx context.Context) (*models.StudentProfile, error)
	UpdateProfile(ctx context.Context, fields map[string]interface{}) error
	RegistrationsOverview(ctx context.Context) ([]models.RegistrationOverview, error)
}

// RegistrationService serves the student status page: the normalised
// registration snapshot plus the derived timeline, progress and label.
type RegistrationService struct {
	client   registrationClient
	timeline *TimelineService
	logger   *zap.Logger
}

// NewRegistrationService constructs the service.
func NewRegistrationService(client registrationClient, timeline *TimelineService, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeline == nil {
		timeline = NewTimelineService()
	}
	return &RegistrationService{client: client, timeline: timeline, logger: logger}
}

// Status fetches the caller's registration and projects it into the timeline
// view. A missing registration is a valid NOT_SUBMITTED state, not an error.
func (s *RegistrationService) Status(ctx context.Context) (*dto.RegistrationStatusResponse, error) {
	record, err := s.client.Registration(ctx)
	if err != nil {
		return nil, err
	}
	steps := s.timeline.Build(record)
	return &dto.RegistrationStatusResponse{
		Record:   record,
		Steps:    steps,
		Progress: s.timeline.Progress(steps),
		Label:    s.timeline.StatusLabel(record, steps),
	}, nil
}

// Register submits a new application form and returns the refreshed status.
func (s *RegistrationService) Register(ctx context.Context, form map[string]interface{}) (*dto.RegistrationStatusResponse, error) {
	if err := s.client.Register(ctx, form); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

// Update amends an existing application form and returns the refreshed
// status.
func (s *RegistrationService) Update(ctx context.Context, form map[string]interface{}) (*dto.RegistrationStatusResponse, error) {
	if err := s.client.UpdateRegistration(ctx, form); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

// Profile returns the caller's student profile.
func (s *RegistrationService) Profile(ctx context.Context) (*models.StudentProfile, error) {
	return s.client.Profile(ctx)
}

// UpdateProfile pushes profile edits upstream.
func (s *RegistrationService) UpdateProfile(ctx context.Context, fields map[string]interface{}) error {
	return s.client.UpdateProfile(ctx, fields)
}

// Overview lists every student's registration state for the admin dashboard.
func (s *RegistrationService) Overview(ctx context.Context) ([]models.RegistrationOverview, error) {
	return s.client.RegistrationsOverview(ctx)
}
