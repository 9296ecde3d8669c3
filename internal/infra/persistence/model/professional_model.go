package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfessionalProfileModel mirrors the 'professional_profiles' table. One row
// per user; UserID references users.id (UUID).
type ProfessionalProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;unique;not null"`
	FullName     string    `gorm:"type:varchar(150);not null"`
	Occupation   string    `gorm:"type:varchar(150);not null"`
	City         string    `gorm:"type:varchar(100);not null"`
	Neighborhood string    `gorm:"type:varchar(100)"`
	Phone        string    `gorm:"type:varchar(50);not null"`
	Email        string    `gorm:"type:varchar(255)"`
	Description  string    `gorm:"type:text"`

	// Derived search fields, recomputed on every write.
	NormalizedOccupation *string `gorm:"type:varchar(150);index"`
	NormalizedCity       *string `gorm:"type:varchar(100);index"`

	// Id of the document currently indexed in the vector store, if any.
	VectorStoreFileID *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfessionalProfileModel) TableName() string {
	return "professional_profiles"
}
