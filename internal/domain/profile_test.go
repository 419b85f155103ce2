package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestProfileRowRoundTrip(t *testing.T) {
	cases := map[string]UserProfile{
		"all fields set": {
			Name:                "Maria",
			Age:                 54,
			Sex:                 SexFemale,
			Weight:              floatPtr(68.5),
			Height:              floatPtr(162),
			DiabetesType:        DiabetesType2,
			DiagnosisYears:      7,
			UsesInsulin:         true,
			InsulinType:         strPtr("NPH"),
			UsesMedication:      true,
			ActivityLevel:       ActivityActive,
			EatingHabits:        EatingIrregular,
			ConsumesAlcohol:     true,
			Smokes:              false,
			OnboardingCompleted: true,
		},
		"optional fields absent": {
			Name:           "João",
			Age:            31,
			Sex:            SexMale,
			DiabetesType:   DiabetesType1,
			DiagnosisYears: 2,
			ActivityLevel:  ActivityModerate,
			EatingHabits:   EatingRegular,
		},
	}

	for name, profile := range cases {
		t.Run(name, func(t *testing.T) {
			row := ToRow("user-1", profile)
			assert.Equal(t, "user-1", row.ID)

			back := FromRow(row)
			if diff := cmp.Diff(profile, back); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToRowMapsOptionalAbsentToNull(t *testing.T) {
	row := ToRow("user-1", UserProfile{Name: "Ana"})

	assert.Nil(t, row.Weight)
	assert.Nil(t, row.Height)
	assert.Nil(t, row.InsulinType)
}

func TestToRowDoesNotAlias(t *testing.T) {
	profile := UserProfile{Weight: floatPtr(70)}
	row := ToRow("user-1", profile)

	*row.Weight = 99
	require.NotNil(t, profile.Weight)
	assert.Equal(t, 70.0, *profile.Weight)
}

func TestProfilePatchApply(t *testing.T) {
	base := UserProfile{Name: "Ana", Age: 40, Sex: SexFemale, UsesInsulin: true, InsulinType: strPtr("Rápida")}

	name := "Ana Paula"
	usesInsulin := false
	updated := ProfilePatch{Name: &name, UsesInsulin: &usesInsulin}.Apply(base)

	assert.Equal(t, "Ana Paula", updated.Name)
	assert.Equal(t, 40, updated.Age)
	assert.False(t, updated.UsesInsulin)
	require.NotNil(t, updated.InsulinType)
	assert.Equal(t, "Rápida", *updated.InsulinType)
	assert.Equal(t, "Ana", base.Name)
}

func TestIsComplete(t *testing.T) {
	var missing *UserProfile
	assert.False(t, missing.IsComplete())
	assert.False(t, (&UserProfile{}).IsComplete())
	assert.True(t, (&UserProfile{OnboardingCompleted: true}).IsComplete())
}
