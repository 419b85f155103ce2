// Package onboarding implements the three-step profile wizard as an explicit
// state machine over a draft of partial profile fields.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/go-playground/validator/v10"
)

type Step int

const (
	StepIdentity Step = iota + 1
	StepTreatment
	StepHabits
)

const (
	FirstStep = StepIdentity
	LastStep  = StepHabits
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepTreatment:
		return "treatment"
	case StepHabits:
		return "habits"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Title is the pt-BR heading of the step.
func (s Step) Title() string {
	switch s {
	case StepIdentity:
		return "Perfil do Usuário"
	case StepTreatment:
		return "Saúde e Tratamento"
	case StepHabits:
		return "Hábitos"
	}
	return ""
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

type Event string

const (
	EventNext Event = "next"
	EventBack Event = "back"
)

// transitions is the whole machine. A missing entry means the event is a
// no-op in that step.
var transitions = map[Step]map[Event]Step{
	StepIdentity:  {EventNext: StepTreatment},
	StepTreatment: {EventNext: StepHabits, EventBack: StepIdentity},
	StepHabits:    {EventBack: StepTreatment},
}

var validate = validator.New()

type identityFields struct {
	Name   *string     `validate:"required,min=1,max=120"`
	Age    *int        `validate:"required,min=1,max=130"`
	Sex    *domain.Sex `validate:"omitempty,oneof=masculino feminino outro"`
	Weight *float64    `validate:"omitempty,gt=0"`
	Height *float64    `validate:"omitempty,gt=0"`
}

type treatmentFields struct {
	DiabetesType   *domain.DiabetesType `validate:"omitempty,oneof=tipo1 tipo2 gestacional pre-diabetes"`
	DiagnosisYears *int                 `validate:"required,min=0,max=120"`
}

type habitFields struct {
	ActivityLevel *domain.ActivityLevel `validate:"omitempty,oneof=sedentario moderado ativo"`
	EatingHabits  *domain.EatingHabits  `validate:"omitempty,oneof=regular irregular"`
}

var stepMessages = map[Step]string{
	StepIdentity:  "Informe seu nome e sua idade para continuar.",
	StepTreatment: "Informe há quantos anos recebeu o diagnóstico.",
	StepHabits:    "Revise seus hábitos antes de concluir.",
}

// State is the serializable form of a wizard.
type State struct {
	Step  Step                `json:"step"`
	Draft domain.ProfilePatch `json:"draft"`
}

// Wizard is not safe for concurrent use.
type Wizard struct {
	step  Step
	draft domain.ProfilePatch
}

// New returns a wizard on the first step with the form defaults preselected.
func New() *Wizard {
	return &Wizard{step: FirstStep, draft: defaultDraft()}
}

// Restore rebuilds a wizard from a saved state. An out-of-range step is
// clamped.
func Restore(s State) *Wizard {
	step := s.Step
	if step < FirstStep {
		step = FirstStep
	}
	if step > LastStep {
		step = LastStep
	}
	return &Wizard{step: step, draft: s.Draft}
}

func defaultDraft() domain.ProfilePatch {
	sex := domain.SexMale
	diabetesType := domain.DiabetesType2
	activity := domain.ActivityModerate
	eating := domain.EatingRegular
	no := false
	return domain.ProfilePatch{
		Sex:             &sex,
		DiabetesType:    &diabetesType,
		UsesInsulin:     boolPtr(no),
		UsesMedication:  boolPtr(no),
		ActivityLevel:   &activity,
		EatingHabits:    &eating,
		ConsumesAlcohol: boolPtr(no),
		Smokes:          boolPtr(no),
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Draft() domain.ProfilePatch { return w.draft }

func (w *Wizard) State() State { return State{Step: w.step, Draft: w.draft} }

// Progress is the completion percentage shown above the form.
func (w *Wizard) Progress() int {
	return int(w.step) * 100 / int(LastStep)
}

// Update merges the non-nil fields of patch into the draft. Toggling
// usesInsulin off keeps whatever insulinType was typed before.
func (w *Wizard) Update(patch domain.ProfilePatch) {
	w.draft = merge(w.draft, patch)
}

// Fire applies an event. Next is refused while the current step is
// incomplete; events with no transition leave the step unchanged.
func (w *Wizard) Fire(ev Event) error {
	next, ok := transitions[w.step][ev]
	if !ok {
		return nil
	}
	if ev == EventNext {
		if err := w.checkStep(w.step); err != nil {
			return err
		}
	}
	w.step = next
	return nil
}

func (w *Wizard) Next() error { return w.Fire(EventNext) }

func (w *Wizard) Back() error { return w.Fire(EventBack) }

// Complete assembles the final profile. It is only allowed on the last step
// and requires every step to be complete.
func (w *Wizard) Complete() (domain.UserProfile, error) {
	if w.step != LastStep {
		return domain.UserProfile{}, fmt.Errorf("complete on step %s: %w", w.step, domain.ErrOnboardingIncomplete)
	}
	for step := FirstStep; step <= LastStep; step++ {
		if err := w.checkStep(step); err != nil {
			return domain.UserProfile{}, err
		}
	}

	d := w.draft
	profile := domain.UserProfile{
		Name:                strings.TrimSpace(valueOr(d.Name, "")),
		Age:                 valueOr(d.Age, 0),
		Sex:                 valueOr(d.Sex, domain.SexOther),
		Weight:              d.Weight,
		Height:              d.Height,
		DiabetesType:        valueOr(d.DiabetesType, domain.DiabetesType2),
		DiagnosisYears:      valueOr(d.DiagnosisYears, 0),
		UsesInsulin:         valueOr(d.UsesInsulin, false),
		InsulinType:         d.InsulinType,
		UsesMedication:      valueOr(d.UsesMedication, false),
		ActivityLevel:       valueOr(d.ActivityLevel, domain.ActivityModerate),
		EatingHabits:        valueOr(d.EatingHabits, domain.EatingRegular),
		ConsumesAlcohol:     valueOr(d.ConsumesAlcohol, false),
		Smokes:              valueOr(d.Smokes, false),
		OnboardingCompleted: true,
	}
	return profile, nil
}

// ProfileSaver persists the finished profile.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
}

// Submit completes the wizard and hands the profile to saver.
func (w *Wizard) Submit(ctx context.Context, saver ProfileSaver) (domain.UserProfile, error) {
	profile, err := w.Complete()
	if err != nil {
		return domain.UserProfile{}, err
	}
	if err := saver.SaveProfile(ctx, profile); err != nil {
		return profile, err
	}
	return profile, nil
}

func (w *Wizard) checkStep(step Step) error {
	d := w.draft
	var fields any
	switch step {
	case StepIdentity:
		var name *string
		if d.Name != nil {
			trimmed := strings.TrimSpace(*d.Name)
			name = &trimmed
		}
		fields = identityFields{Name: name, Age: d.Age, Sex: d.Sex, Weight: d.Weight, Height: d.Height}
	case StepTreatment:
		fields = treatmentFields{DiabetesType: d.DiabetesType, DiagnosisYears: d.DiagnosisYears}
	case StepHabits:
		fields = habitFields{ActivityLevel: d.ActivityLevel, EatingHabits: d.EatingHabits}
	default:
		return fmt.Errorf("unknown step %d", int(step))
	}

	if err := validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &StepError{
				Step:   step,
				Fields: fieldNames(verrs),
				Err:    domain.NewValidationError("Campos obrigatórios", stepMessages[step]),
			}
		}
		return err
	}
	return nil
}

// StepError reports which fields block a step.
type StepError struct {
	Step   Step
	Fields []string
	Err    *domain.ValidationError
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s incomplete (%s): %v", e.Step, strings.Join(e.Fields, ", "), e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{e.Err, domain.ErrOnboardingIncomplete}
}

func fieldNames(verrs validator.ValidationErrors) []string {
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, jsonName(fe.Field()))
	}
	return names
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func merge(dst, src domain.ProfilePatch) domain.ProfilePatch {
	if src.Name != nil {
		dst.Name = src.Name
	}
	if src.Age != nil {
		dst.Age = src.Age
	}
	if src.Sex != nil {
		dst.Sex = src.Sex
	}
	if src.Weight != nil {
		dst.Weight = src.Weight
	}
	if src.Height != nil {
		dst.Height = src.Height
	}
	if src.DiabetesType != nil {
		dst.DiabetesType = src.DiabetesType
	}
	if src.DiagnosisYears != nil {
		dst.DiagnosisYears = src.DiagnosisYears
	}
	if src.UsesInsulin != nil {
		dst.UsesInsulin = src.UsesInsulin
	}
	if src.InsulinType != nil {
		dst.InsulinType = src.InsulinType
	}
	if src.UsesMedication != nil {
		dst.UsesMedication = src.UsesMedication
	}
	if src.ActivityLevel != nil {
		dst.ActivityLevel = src.ActivityLevel
	}
	if src.EatingHabits != nil {
		dst.EatingHabits = src.EatingHabits
	}
	if src.ConsumesAlcohol != nil {
		dst.ConsumesAlcohol = src.ConsumesAlcohol
	}
	if src.Smokes != nil {
		dst.Smokes = src.Smokes
	}
	return dst
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func boolPtr(v bool) *bool { return &v }
