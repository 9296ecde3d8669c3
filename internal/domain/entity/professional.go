package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentSource is the fixed provenance tag attached to every document
// mirrored into the external index.
const DocumentSource = "registro"

// ProfessionalProfile is the one-to-one child of a User that makes the user
// discoverable in the directory. The NormalizedOccupation and NormalizedCity
// fields are derived (trimmed, lowercased) copies of their sources and are
// recomputed on every write.
//
// VectorStoreFileID is the ground truth for "is this profile discoverable in
// search": it stays nil until an index sync succeeds and is only ever set
// immediately after a successful sync.
type ProfessionalProfile struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	FullName             string // Required. Display name shown in search results.
	Occupation           string // Required. Primary occupation.
	City                 string
	Neighborhood         string
	Phone                string
	Email                string // Contact email. Falls back to the owner's login email.
	Description          string
	NormalizedOccupation *string
	NormalizedCity       *string
	VectorStoreFileID    *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Normalize recomputes the derived search fields from their sources.
func (p *ProfessionalProfile) Normalize() {
	p.NormalizedOccupation = NormalizeField(p.Occupation)
	p.NormalizedCity = NormalizeField(p.City)
}

// NormalizeField lowercases and trims a human-entered field for consistent
// matching. Blank input yields nil.
func NormalizeField(raw string) *string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return nil
	}

	return &normalized
}

// ProfileDocument is the flat record mirrored into the external index for one
// professional profile. Field names follow the stored wire format.
type ProfileDocument struct {
	UserID               string  `json:"user_id"`
	ProfileID            string  `json:"prof_id"`
	FullName             string  `json:"nombre_completo"`
	Occupation           string  `json:"profesion_principal"`
	City                 string  `json:"ciudad"`
	Neighborhood         string  `json:"barrio"`
	Phone                string  `json:"telefono"`
	Email                string  `json:"email"`
	Description          string  `json:"descripcion_breve"`
	NormalizedOccupation *string `json:"profesion_normalizada"`
	NormalizedCity       *string `json:"ciudad_normalizada"`
	Source               string  `json:"source"`
}

// BuildProfileDocument assembles the index document for a profile.
func BuildProfileDocument(p *ProfessionalProfile) *ProfileDocument {
	return &ProfileDocument{
		UserID:               p.UserID.String(),
		ProfileID:            p.ID.String(),
		FullName:             p.FullName,
		Occupation:           p.Occupation,
		City:                 p.City,
		Neighborhood:         p.Neighborhood,
		Phone:                p.Phone,
		Email:                p.Email,
		Description:          p.Description,
		NormalizedOccupation: p.NormalizedOccupation,
		NormalizedCity:       p.NormalizedCity,
		Source:               DocumentSource,
	}
}
