// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account in the
// directory. It holds the login identity plus a few optional contact fields.
type User struct {
	ID                  uuid.UUID            // The unique identifier for the user.
	Email               string               // The user's login email. Unique at the store level.
	PasswordHash        string               // Bcrypt hash of the user's password. Never serialized outward.
	FullName            string               // The user's display name. Optional.
	Phone               string               // Contact phone. Optional.
	City                string               // City of residence. Optional.
	IsProfessional      bool                 // Whether the user registered as a professional.
	ProfessionalProfile *ProfessionalProfile // Nil unless the user maintains a professional profile.
	CreatedAt           time.Time            // Timestamp of when this user account was created.
	UpdatedAt           time.Time            // Timestamp of the last modification to this user's data.
}
