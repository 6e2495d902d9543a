package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studysphere/backend/internal/domain"
	"github.com/studysphere/backend/internal/event"
	"github.com/studysphere/backend/internal/repository"
	apperrors "github.com/studysphere/backend/pkg/errors"
)

// maxGroupNameLength keeps group names usable as path parameters.
const maxGroupNameLength = 100

const maxGroupDescriptionLength = 1000

// GroupService implements the business logic for study groups.
type GroupService struct {
	groups   repository.GroupRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewGroupService creates a new group service.
func NewGroupService(groups repository.GroupRepository, producer *event.Producer, logger *slog.Logger) *GroupService {
	return &GroupService{
		groups:   groups,
		producer: producer,
		logger:   logger,
	}
}

// CreateGroupInput holds the parameters for creating a group.
type CreateGroupInput struct {
	Name        string
	Description string
}

// UpdateGroupInput holds the parameters for updating a group. Nil fields are
// left unchanged.
type UpdateGroupInput struct {
	Description     *string
	JoinType        *string
	PostPermission  *string
	EditPermissions *string
}

// Create inserts a new group owned by the given user.
func (s *GroupService) Create(ctx context.Context, ownerID string, input CreateGroupInput) (*domain.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.Validation("Group name cannot be empty")
	}
	if len(name) > maxGroupNameLength {
		return nil, apperrors.Validation("Group name must be no more than 100 characters long")
	}
	if len(input.Description) > maxGroupDescriptionLength {
		return nil, apperrors.Validation("Group description must be no more than 1000 characters long")
	}

	group := &domain.Group{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		Name:            name,
		Description:     input.Description,
		JoinType:        domain.JoinTypePublic,
		PostPermission:  domain.PostPermissionAll,
		EditPermissions: domain.EditPermissionsOwner,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.Validation("Group name already taken")
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	if err := s.producer.PublishGroupCreated(ctx, group); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish group.created event",
			slog.String("group_id", group.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "group created",
		slog.String("group_id", group.ID),
		slog.String("owner_id", ownerID),
		slog.String("name", group.Name),
	)

	return group, nil
}

// GetByName retrieves a group by its unique name.
func (s *GroupService) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	group, err := s.groups.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("group")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// List returns all groups, newest first.
func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Update applies the provided fields to an existing group.
func (s *GroupService) Update(ctx context.Context, name string, input UpdateGroupInput) (*domain.Group, error) {
	group, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		if len(*input.Description) > maxGroupDescriptionLength {
			return nil, apperrors.Validation("Group description must be no more than 1000 characters long")
		}
		group.Description = *input.Description
	}
	if input.JoinType != nil {
		group.JoinType = *input.JoinType
	}
	if input.PostPermission != nil {
		group.PostPermission = *input.PostPermission
	}
	if input.EditPermissions != nil {
		group.EditPermissions = *input.EditPermissions
	}

	if err := s.groups.Update(ctx, group); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("group")
		}
		return nil, fmt.Errorf("update group: %w", err)
	}

	s.logger.InfoContext(ctx, "group updated",
		slog.String("group_id", group.ID),
		slog.String("name", group.Name),
	)

	return group, nil
}

// Delete removes a group by its name.
func (s *GroupService) Delete(ctx context.Context, name string) error {
	group, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.groups.Delete(ctx, name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("group")
		}
		return fmt.Errorf("delete group: %w", err)
	}

	if err := s.producer.PublishGroupDeleted(ctx, group); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish group.deleted event",
			slog.String("group_id", group.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "group deleted",
		slog.String("group_id", group.ID),
		slog.String("name", group.Name),
	)

	return nil
}
