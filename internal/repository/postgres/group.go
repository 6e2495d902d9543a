package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studysphere/backend/internal/domain"
	apperrors "github.com/studysphere/backend/pkg/errors"
)

// GroupRepository implements repository.GroupRepository using PostgreSQL.
type GroupRepository struct {
	db DB
}

// NewGroupRepository creates a new PostgreSQL-backed group repository.
func NewGroupRepository(db DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a new group into the database.
func (r *GroupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `
		INSERT INTO groups (id, owner_id, name, description, join_type, post_permission, edit_permissions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		g.ID,
		g.OwnerID,
		g.Name,
		g.Description,
		g.JoinType,
		g.PostPermission,
		g.EditPermissions,
		g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("group", "name", g.Name)
		}
		return fmt.Errorf("insert group: %w", err)
	}

	return nil
}

// GetByName retrieves a group by its unique name.
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	query := `
		SELECT id, owner_id, name, description, join_type, post_permission, edit_permissions, created_at
		FROM groups
		WHERE name = $1`

	var g domain.Group
	err := r.db.QueryRow(ctx, query, name).Scan(
		&g.ID,
		&g.OwnerID,
		&g.Name,
		&g.Description,
		&g.JoinType,
		&g.PostPermission,
		&g.EditPermissions,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan group: %w", err)
	}

	return &g, nil
}

// List returns all groups ordered by creation time, newest first.
func (r *GroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	query := `
		SELECT id, owner_id, name, description, join_type, post_permission, edit_permissions, created_at
		FROM groups
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(
			&g.ID,
			&g.OwnerID,
			&g.Name,
			&g.Description,
			&g.JoinType,
			&g.PostPermission,
			&g.EditPermissions,
			&g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}

	if groups == nil {
		groups = []domain.Group{}
	}

	return groups, nil
}

// Update modifies an existing group in the database. The group is addressed
// by its immutable ID so the name itself can change.
func (r *GroupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, join_type = $3, post_permission = $4, edit_permissions = $5
		WHERE id = $6`

	ct, err := r.db.Exec(ctx, query,
		g.Name,
		g.Description,
		g.JoinType,
		g.PostPermission,
		g.EditPermissions,
		g.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("group", "name", g.Name)
		}
		return fmt.Errorf("update group: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("group")
	}

	return nil
}

// Delete removes a group from the database by its name.
func (r *GroupRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM groups WHERE name = $1`

	ct, err := r.db.Exec(ctx, query, name)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("group")
	}

	return nil
}
