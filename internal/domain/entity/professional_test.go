package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		nil_  bool
	}{
		{name: "mixed case with surrounding spaces", input: "  Plomera ", want: "plomera"},
		{name: "already normalized", input: "lima", want: "lima"},
		{name: "uppercase", input: "LIMA", want: "lima"},
		{name: "inner whitespace preserved", input: " Buenos  Aires ", want: "buenos  aires"},
		{name: "blank", input: "   ", nil_: true},
		{name: "empty", input: "", nil_: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeField(tt.input)
			if tt.nil_ {
				assert.Nil(t, got)

				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestProfessionalProfile_Normalize_Recomputes(t *testing.T) {
	profile := &ProfessionalProfile{
		Occupation: "  Plomera ",
		City:       "  Lima ",
	}

	profile.Normalize()

	require.NotNil(t, profile.NormalizedOccupation)
	require.NotNil(t, profile.NormalizedCity)
	assert.Equal(t, "plomera", *profile.NormalizedOccupation)
	assert.Equal(t, "lima", *profile.NormalizedCity)

	// Clearing a source field must clear its derived field on the next pass.
	profile.City = " "
	profile.Normalize()
	assert.Nil(t, profile.NormalizedCity)
}

func TestBuildProfileDocument(t *testing.T) {
	userID := uuid.New()
	profile := &ProfessionalProfile{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     "Ana",
		Occupation:   "Plomera",
		City:         "Lima",
		Neighborhood: "Miraflores",
		Email:        "ana@example.com",
	}
	profile.Normalize()

	doc := BuildProfileDocument(profile)

	assert.Equal(t, userID.String(), doc.UserID)
	assert.Equal(t, profile.ID.String(), doc.ProfileID)
	assert.Equal(t, "Ana", doc.FullName)
	require.NotNil(t, doc.NormalizedOccupation)
	assert.Equal(t, "plomera", *doc.NormalizedOccupation)
	assert.Equal(t, DocumentSource, doc.Source)
}
