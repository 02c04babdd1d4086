package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotChangeSuper = errors.New("super admin role cannot be changed")
	ErrAlreadyInRole     = errors.New("user already has that role")
)

type Service interface {
	List(ctx context.Context) ([]AdminResponse, error)
	Promote(ctx context.Context, id uuid.UUID) (*AdminResponse, error)
	Demote(ctx context.Context, id uuid.UUID) (*AdminResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]AdminResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]AdminResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToAdminResponse())
	}
	return responses, nil
}

func (s *service) Promote(ctx context.Context, id uuid.UUID) (*AdminResponse, error) {
	return s.changeRole(ctx, id, RoleAdmin)
}

func (s *service) Demote(ctx context.Context, id uuid.UUID) (*AdminResponse, error) {
	return s.changeRole(ctx, id, RoleUser)
}

func (s *service) changeRole(ctx context.Context, id uuid.UUID, target Role) (*AdminResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Role == RoleSuperAdmin {
		return nil, ErrCannotChangeSuper
	}
	if user.Role == target {
		return nil, ErrAlreadyInRole
	}

	if err := s.repo.UpdateRole(ctx, id, target); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	user.Role = target
	resp := user.ToAdminResponse()
	return &resp, nil
}
