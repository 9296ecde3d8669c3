// Package model contains the GORM table mappings for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	FullName       string    `gorm:"type:varchar(150);not null"`
	Phone          string    `gorm:"type:varchar(50)"`
	City           string    `gorm:"type:varchar(100)"`
	IsProfessional bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	ProfessionalProfile *ProfessionalProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
