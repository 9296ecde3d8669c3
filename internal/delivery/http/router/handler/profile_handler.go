package handler

import (
	"log/slog"
	"net/http"
	"time"

	"directorio/internal/delivery/http/response"
	"directorio/internal/domain/entity"
	"directorio/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfessionalRequest is the wire format for the human-entered fields of a
// professional profile. Field names match the stored document format.
type ProfessionalRequest struct {
	FullName     string `json:"nombre_completo"     validate:"required"`
	Occupation   string `json:"profesion_principal" validate:"required"`
	City         string `json:"ciudad"`
	Neighborhood string `json:"barrio"`
	Phone        string `json:"telefono"`
	Email        string `json:"email"               validate:"omitempty,email"`
	Description  string `json:"descripcion_breve"`
}

func (r *ProfessionalRequest) toInput() *usecase.ProfessionalInput {
	if r == nil {
		return nil
	}

	return &usecase.ProfessionalInput{
		FullName:     r.FullName,
		Occupation:   r.Occupation,
		City:         r.City,
		Neighborhood: r.Neighborhood,
		Phone:        r.Phone,
		Email:        r.Email,
		Description:  r.Description,
	}
}

// ProfileResponse is the public view of a professional profile, derived
// fields included.
type ProfileResponse struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"user_id"`
	FullName             string  `json:"nombre_completo"`
	Occupation           string  `json:"profesion_principal"`
	City                 string  `json:"ciudad"`
	Neighborhood         string  `json:"barrio"`
	Phone                string  `json:"telefono"`
	Email                string  `json:"email"`
	Description          string  `json:"descripcion_breve"`
	NormalizedOccupation *string `json:"profesion_normalizada"`
	NormalizedCity       *string `json:"ciudad_normalizada"`
	VectorStoreFileID    *string `json:"vector_store_file_id"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

func toProfileResponse(profile *entity.ProfessionalProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:                   profile.ID.String(),
		UserID:               profile.UserID.String(),
		FullName:             profile.FullName,
		Occupation:           profile.Occupation,
		City:                 profile.City,
		Neighborhood:         profile.Neighborhood,
		Phone:                profile.Phone,
		Email:                profile.Email,
		Description:          profile.Description,
		NormalizedOccupation: profile.NormalizedOccupation,
		NormalizedCity:       profile.NormalizedCity,
		VectorStoreFileID:    profile.VectorStoreFileID,
		CreatedAt:            profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            profile.UpdatedAt.Format(time.RFC3339),
	}
}

// ProfileHandler holds dependencies for professional profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetMyProfile returns the authenticated user's professional profile.
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(profile), "Profile retrieved successfully")
}

// UpsertMyProfile creates or replaces the authenticated user's professional
// profile and synchronously refreshes its document in the search index.
func (h *ProfileHandler) UpsertMyProfile(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ProfessionalRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.UpsertProfile(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	statusCode := http.StatusOK
	message := "Profile updated successfully"
	if view.Created {
		statusCode = http.StatusCreated
		message = "Profile created successfully"
	}

	return response.Success(c, statusCode, toProfileResponse(view.Profile), message)
}

// RemoveFromIndex withdraws the authenticated user's profile from search.
// The profile row itself survives.
func (h *ProfileHandler) RemoveFromIndex(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	removed, err := h.uc.RemoveFromIndex(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"removed": removed}, "Profile removed from index")
}

// ContactQR renders a PNG QR code pointing at the profile's public contact card.
func (h *ProfileHandler) ContactQR(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	png, err := h.uc.ContactQR(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
