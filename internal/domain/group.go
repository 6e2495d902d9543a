package domain

import (
	"time"
)

// Default group policy values applied at creation.
const (
	JoinTypePublic       = "public"
	PostPermissionAll    = "all_members"
	EditPermissionsOwner = "owner_only"
)

// Group is a study group. Only the owner may modify or delete it.
type Group struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	JoinType        string    `json:"join_type"`
	PostPermission  string    `json:"post_permission"`
	EditPermissions string    `json:"edit_permissions"`
	CreatedAt       time.Time `json:"created_at"`
}
