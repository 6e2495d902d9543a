package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/studysphere/backend/internal/domain"
	"github.com/studysphere/backend/internal/service"
	"github.com/studysphere/backend/pkg/httputil"
)

// GroupHandler handles HTTP requests for study group endpoints.
type GroupHandler struct {
	service *service.GroupService
	logger  *slog.Logger
}

// NewGroupHandler creates a new group HTTP handler.
func NewGroupHandler(svc *service.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{service: svc, logger: logger}
}

// CreateGroupRequest is the JSON request body for group creation.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateGroupRequest is the JSON request body for group updates. Omitted
// fields are left unchanged.
type UpdateGroupRequest struct {
	Description     *string `json:"description"`
	JoinType        *string `json:"join_type"`
	PostPermission  *string `json:"post_permission"`
	EditPermissions *string `json:"edit_permissions"`
}

// GroupResponse is the JSON representation of a group. IsOwner reflects the
// requesting identity and is false for anonymous reads.
type GroupResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	JoinType        string    `json:"join_type"`
	PostPermission  string    `json:"post_permission"`
	EditPermissions string    `json:"edit_permissions"`
	CreatedAt       time.Time `json:"created_at"`
	IsOwner         bool      `json:"is_owner"`
}

func groupResponse(g *domain.Group, identity *Identity) GroupResponse {
	return GroupResponse{
		ID:              g.ID,
		OwnerID:         g.OwnerID,
		Name:            g.Name,
		Description:     g.Description,
		JoinType:        g.JoinType,
		PostPermission:  g.PostPermission,
		EditPermissions: g.EditPermissions,
		CreatedAt:       g.CreatedAt,
		IsOwner:         identity != nil && identity.UserID == g.OwnerID,
	}
}

// Create handles POST /api/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	group, err := h.service.Create(r.Context(), identity.UserID, service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, groupResponse(group, identity))
}

// List handles GET /api/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	groups, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	out := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, groupResponse(&groups[i], identity))
	}

	httputil.WriteJSON(w, http.StatusOK, out)
}

// Get handles GET /api/groups/{name}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	group, err := h.service.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, groupResponse(group, identity))
}

// Update handles PUT /api/groups/{name}
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	group, err := h.service.Update(r.Context(), chi.URLParam(r, "name"), service.UpdateGroupInput{
		Description:     req.Description,
		JoinType:        req.JoinType,
		PostPermission:  req.PostPermission,
		EditPermissions: req.EditPermissions,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, groupResponse(group, identity))
}

// Delete handles DELETE /api/groups/{name}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
