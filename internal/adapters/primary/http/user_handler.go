package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lorrc/users-api/internal/core/domain"
	apperrors "github.com/lorrc/users-api/internal/core/errors"
	"github.com/lorrc/users-api/internal/core/ports"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	userService ports.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService ports.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.With("handler", "user"),
	}
}

// Routes returns the user route table.
func (h *UserHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/users", Handler: h.HandleListUsers},
		{Method: http.MethodGet, Pattern: "/users/{userID}", Handler: h.HandleGetUser},
		{Method: http.MethodPost, Pattern: "/users", Handler: h.HandleCreateUser},
		{Method: http.MethodPut, Pattern: "/users/{userID}", Handler: h.HandleUpdateUser},
		{Method: http.MethodDelete, Pattern: "/users/{userID}", Handler: h.HandleDeleteUser},
	}
}

// --- Request/Response DTOs ---

// UserDTO is the wire representation of a user
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserRequest defines the expected JSON body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest defines the expected JSON body for updating a user.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

// --- Handlers ---

// HandleListUsers handles GET /users
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.userService.GetUsers(r.Context())
	if err != nil {
		return err
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}

	WriteOK(w, dtos)
	return nil
}

// HandleGetUser handles GET /users/{userID}
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) error {
	id, err := parseUserID(r)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		return err
	}

	WriteOK(w, toUserDTO(user))
	return nil
}

// HandleCreateUser handles POST /users
func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) error {
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		return fmt.Errorf("decode create user body: %w", err)
	}

	user, err := h.userService.CreateUser(r.Context(), domain.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	h.logger.InfoContext(r.Context(), "user created", "user_id", user.ID)

	WriteCreated(w, toUserDTO(user))
	return nil
}

// HandleUpdateUser handles PUT /users/{userID}
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := parseUserID(r)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		return fmt.Errorf("decode update user body: %w", err)
	}

	user, err := h.userService.UpdateUser(r.Context(), id, domain.UpdateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	WriteOK(w, toUserDTO(user))
	return nil
}

// HandleDeleteUser handles DELETE /users/{userID}
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := parseUserID(r)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		return err
	}

	h.logger.InfoContext(r.Context(), "user deleted", "user_id", id)

	WriteOK(w, MessageResponse{Message: "user deleted"})
	return nil
}

// parseUserID reads {userID} from the path. A malformed value is a
// validation error and never reaches the service.
func parseUserID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid user id format")
	}
	return id, nil
}
