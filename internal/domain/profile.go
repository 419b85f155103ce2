package domain

import "time"

type Sex string

const (
	SexMale   Sex = "masculino"
	SexFemale Sex = "feminino"
	SexOther  Sex = "outro"
)

type DiabetesType string

const (
	DiabetesType1           DiabetesType = "tipo1"
	DiabetesType2           DiabetesType = "tipo2"
	DiabetesTypeGestational DiabetesType = "gestacional"
	DiabetesTypePre         DiabetesType = "pre-diabetes"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentario"
	ActivityModerate  ActivityLevel = "moderado"
	ActivityActive    ActivityLevel = "ativo"
)

type EatingHabits string

const (
	EatingRegular   EatingHabits = "regular"
	EatingIrregular EatingHabits = "irregular"
)

// UserProfile is the client-side shape of the health profile. Exactly one is
// active per device; it is anonymous until an identity owns it.
type UserProfile struct {
	// Identity
	Name   string   `json:"name" binding:"max=120"`
	Age    int      `json:"age" binding:"min=0,max=130"`
	Sex    Sex      `json:"sex" binding:"omitempty,oneof=masculino feminino outro"`
	Weight *float64 `json:"weight,omitempty" binding:"omitempty,gt=0"`
	Height *float64 `json:"height,omitempty" binding:"omitempty,gt=0"`

	// Treatment
	DiabetesType   DiabetesType `json:"diabetesType" binding:"omitempty,oneof=tipo1 tipo2 gestacional pre-diabetes"`
	DiagnosisYears int          `json:"diagnosisYears" binding:"min=0"`
	UsesInsulin    bool         `json:"usesInsulin"`
	InsulinType    *string      `json:"insulinType,omitempty"`
	UsesMedication bool         `json:"usesMedication"`

	// Habits
	ActivityLevel   ActivityLevel `json:"activityLevel" binding:"omitempty,oneof=sedentario moderado ativo"`
	EatingHabits    EatingHabits  `json:"eatingHabits" binding:"omitempty,oneof=regular irregular"`
	ConsumesAlcohol bool          `json:"consumesAlcohol"`
	Smokes          bool          `json:"smokes"`

	OnboardingCompleted bool `json:"onboardingCompleted"`
}

// IsComplete reports whether the profile unlocks the main routes.
func (p *UserProfile) IsComplete() bool {
	return p != nil && p.OnboardingCompleted
}

// ProfilePatch is a partial update; nil fields are left untouched.
type ProfilePatch struct {
	Name                *string        `json:"name" binding:"omitempty,max=120"`
	Age                 *int           `json:"age" binding:"omitempty,min=0,max=130"`
	Sex                 *Sex           `json:"sex" binding:"omitempty,oneof=masculino feminino outro"`
	Weight              *float64       `json:"weight" binding:"omitempty,gt=0"`
	Height              *float64       `json:"height" binding:"omitempty,gt=0"`
	DiabetesType        *DiabetesType  `json:"diabetesType" binding:"omitempty,oneof=tipo1 tipo2 gestacional pre-diabetes"`
	DiagnosisYears      *int           `json:"diagnosisYears" binding:"omitempty,min=0"`
	UsesInsulin         *bool          `json:"usesInsulin"`
	InsulinType         *string        `json:"insulinType"`
	UsesMedication      *bool          `json:"usesMedication"`
	ActivityLevel       *ActivityLevel `json:"activityLevel" binding:"omitempty,oneof=sedentario moderado ativo"`
	EatingHabits        *EatingHabits  `json:"eatingHabits" binding:"omitempty,oneof=regular irregular"`
	ConsumesAlcohol     *bool          `json:"consumesAlcohol"`
	Smokes              *bool          `json:"smokes"`
	OnboardingCompleted *bool          `json:"onboardingCompleted"`
}

// Apply returns a copy of p with the patch merged in.
func (patch ProfilePatch) Apply(p UserProfile) UserProfile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Sex != nil {
		p.Sex = *patch.Sex
	}
	if patch.Weight != nil {
		p.Weight = patch.Weight
	}
	if patch.Height != nil {
		p.Height = patch.Height
	}
	if patch.DiabetesType != nil {
		p.DiabetesType = *patch.DiabetesType
	}
	if patch.DiagnosisYears != nil {
		p.DiagnosisYears = *patch.DiagnosisYears
	}
	if patch.UsesInsulin != nil {
		p.UsesInsulin = *patch.UsesInsulin
	}
	if patch.InsulinType != nil {
		p.InsulinType = patch.InsulinType
	}
	if patch.UsesMedication != nil {
		p.UsesMedication = *patch.UsesMedication
	}
	if patch.ActivityLevel != nil {
		p.ActivityLevel = *patch.ActivityLevel
	}
	if patch.EatingHabits != nil {
		p.EatingHabits = *patch.EatingHabits
	}
	if patch.ConsumesAlcohol != nil {
		p.ConsumesAlcohol = *patch.ConsumesAlcohol
	}
	if patch.Smokes != nil {
		p.Smokes = *patch.Smokes
	}
	if patch.OnboardingCompleted != nil {
		p.OnboardingCompleted = *patch.OnboardingCompleted
	}
	return p
}

// ProfileRow is the server-side row of the profiles table, keyed by identity.
type ProfileRow struct {
	ID                  string    `json:"id" db:"id"`
	Name                string    `json:"name" db:"name" binding:"max=120"`
	Age                 int       `json:"age" db:"age" binding:"min=0,max=130"`
	Sex                 string    `json:"sex" db:"sex" binding:"omitempty,oneof=masculino feminino outro"`
	Weight              *float64  `json:"weight" db:"weight" binding:"omitempty,gt=0"`
	Height              *float64  `json:"height" db:"height" binding:"omitempty,gt=0"`
	DiabetesType        string    `json:"diabetes_type" db:"diabetes_type" binding:"omitempty,oneof=tipo1 tipo2 gestacional pre-diabetes"`
	DiagnosisYears      int       `json:"diagnosis_years" db:"diagnosis_years" binding:"min=0"`
	UsesInsulin         bool      `json:"uses_insulin" db:"uses_insulin"`
	InsulinType         *string   `json:"insulin_type" db:"insulin_type"`
	UsesMedication      bool      `json:"uses_medication" db:"uses_medication"`
	ActivityLevel       string    `json:"activity_level" db:"activity_level" binding:"omitempty,oneof=sedentario moderado ativo"`
	EatingHabits        string    `json:"eating_habits" db:"eating_habits" binding:"omitempty,oneof=regular irregular"`
	ConsumesAlcohol     bool      `json:"consumes_alcohol" db:"consumes_alcohol"`
	Smokes              bool      `json:"smokes" db:"smokes"`
	OnboardingCompleted bool      `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// ToRow translates a client profile into the row owned by identity.
func ToRow(identity string, p UserProfile) ProfileRow {
	return ProfileRow{
		ID:                  identity,
		Name:                p.Name,
		Age:                 p.Age,
		Sex:                 string(p.Sex),
		Weight:              cloneFloat(p.Weight),
		Height:              cloneFloat(p.Height),
		DiabetesType:        string(p.DiabetesType),
		DiagnosisYears:      p.DiagnosisYears,
		UsesInsulin:         p.UsesInsulin,
		InsulinType:         cloneString(p.InsulinType),
		UsesMedication:      p.UsesMedication,
		ActivityLevel:       string(p.ActivityLevel),
		EatingHabits:        string(p.EatingHabits),
		ConsumesAlcohol:     p.ConsumesAlcohol,
		Smokes:              p.Smokes,
		OnboardingCompleted: p.OnboardingCompleted,
	}
}

// FromRow is the inverse of ToRow. Timestamps and id are dropped.
func FromRow(r ProfileRow) UserProfile {
	return UserProfile{
		Name:                r.Name,
		Age:                 r.Age,
		Sex:                 Sex(r.Sex),
		Weight:              cloneFloat(r.Weight),
		Height:              cloneFloat(r.Height),
		DiabetesType:        DiabetesType(r.DiabetesType),
		DiagnosisYears:      r.DiagnosisYears,
		UsesInsulin:         r.UsesInsulin,
		InsulinType:         cloneString(r.InsulinType),
		UsesMedication:      r.UsesMedication,
		ActivityLevel:       ActivityLevel(r.ActivityLevel),
		EatingHabits:        EatingHabits(r.EatingHabits),
		ConsumesAlcohol:     r.ConsumesAlcohol,
		Smokes:              r.Smokes,
		OnboardingCompleted: r.OnboardingCompleted,
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (s Sex) Label() string {
	switch s {
	case SexMale:
		return "Masculino"
	case SexFemale:
		return "Feminino"
	case SexOther:
		return "Outro"
	}
	return string(s)
}

func (t DiabetesType) Label() string {
	switch t {
	case DiabetesType1:
		return "Tipo 1"
	case DiabetesType2:
		return "Tipo 2"
	case DiabetesTypeGestational:
		return "Gestacional"
	case DiabetesTypePre:
		return "Pré-diabetes"
	}
	return string(t)
}

func (a ActivityLevel) Label() string {
	switch a {
	case ActivitySedentary:
		return "Sedentário"
	case ActivityModerate:
		return "Moderado"
	case ActivityActive:
		return "Ativo"
	}
	return string(a)
}

func (e EatingHabits) Label() string {
	switch e {
	case EatingRegular:
		return "Regular"
	case EatingIrregular:
		return "Irregular"
	}
	return string(e)
}
