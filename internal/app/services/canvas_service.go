package services

import (
	"context"

	"github.com/yigit/canvasstudy/internal/domain"
)

// CanvasService proxies Canvas reads with the caller's credentials
type CanvasService interface {
	Validate(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Permissions(ctx context.Context, creds domain.Credentials, courseID string) (*domain.PermissionReport, error)
	Courses(ctx context.Context, creds domain.Credentials) ([]domain.Course, error)
	Files(ctx context.Context, creds domain.Credentials, courseID string) ([]domain.FileRecord, error)
	Assignments(ctx context.Context, creds domain.Credentials, courseID string) ([]domain.Assignment, error)
	Modules(ctx context.Context, creds domain.Credentials, courseID string) ([]domain.Module, error)
}

type canvasServiceImpl struct {
	newClient ClientFactory
}

// NewCanvasService creates a new CanvasService
func NewCanvasService(newClient ClientFactory) CanvasService {
	return &canvasServiceImpl{newClient: newClient}
}

func (s *canvasServiceImpl) Validate(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return client.ValidateCredentials(ctx)
}

// Permissions reports which Canvas areas the credentials may read.
func (s *canvasServiceImpl) Permissions(ctx context.Context, creds domain.Credentials, courseID string) (*domain.PermissionReport, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return client.DiagnosePermissions(ctx, courseID)
}

func (s *canvasServiceImpl) Courses(ctx context.Context, creds domain.Credentials) ([]domain.Course, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return client.ListCourses(ctx)
}

func (s *canvasServiceImpl) Files(ctx context.Context, creds domain.Credentials, courseID string) ([]domain.FileRecord, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return client.ListFiles(ctx, courseID)
}

func (s *canvasServiceImpl) Assignments(ctx context.Context, creds domain.Credentials, courseID string) ([]domain.Assignment, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return client.ListAssignments(ctx, courseID)
}

func (s *canvasServiceImpl) Modules(ctx context.Context, creds domain.Credentials, courseID string) ([]domain.Module, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return client.ListModules(ctx, courseID)
}
