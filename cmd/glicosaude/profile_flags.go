package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

// profileFlags exposes every profile field. Only flags that were set end up
// in the patch.
type profileFlags struct {
	name            string
	age             int
	sex             string
	weight          float64
	height          float64
	diabetesType    string
	diagnosisYears  int
	usesInsulin     bool
	insulinType     string
	usesMedication  bool
	activityLevel   string
	eatingHabits    string
	consumesAlcohol bool
	smokes          bool
}

func (f *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name")
	fs.IntVar(&f.age, "age", 0, "Age in years")
	fs.StringVar(&f.sex, "sex", "", "masculino, feminino or outro")
	fs.Float64Var(&f.weight, "weight", 0, "Weight in kg")
	fs.Float64Var(&f.height, "height", 0, "Height in cm")
	fs.StringVar(&f.diabetesType, "diabetes-type", "", "tipo1, tipo2, gestacional or pre-diabetes")
	fs.IntVar(&f.diagnosisYears, "diagnosis-years", 0, "Years since diagnosis")
	fs.BoolVar(&f.usesInsulin, "uses-insulin", false, "Uses insulin")
	fs.StringVar(&f.insulinType, "insulin-type", "", "Insulin type")
	fs.BoolVar(&f.usesMedication, "uses-medication", false, "Uses oral medication")
	fs.StringVar(&f.activityLevel, "activity-level", "", "sedentario, moderado or ativo")
	fs.StringVar(&f.eatingHabits, "eating-habits", "", "regular or irregular")
	fs.BoolVar(&f.consumesAlcohol, "consumes-alcohol", false, "Consumes alcohol")
	fs.BoolVar(&f.smokes, "smokes", false, "Smokes")
}

var patchValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// patch builds a ProfilePatch from the flags set on fs and validates it.
func (f *profileFlags) patch(fs *pflag.FlagSet) (domain.ProfilePatch, error) {
	var p domain.ProfilePatch
	set := func(name string) bool { return fs.Changed(name) }

	if set("name") {
		p.Name = &f.name
	}
	if set("age") {
		p.Age = &f.age
	}
	if set("sex") {
		sex := domain.Sex(f.sex)
		p.Sex = &sex
	}
	if set("weight") {
		p.Weight = &f.weight
	}
	if set("height") {
		p.Height = &f.height
	}
	if set("diabetes-type") {
		t := domain.DiabetesType(f.diabetesType)
		p.DiabetesType = &t
	}
	if set("diagnosis-years") {
		p.DiagnosisYears = &f.diagnosisYears
	}
	if set("uses-insulin") {
		p.UsesInsulin = &f.usesInsulin
	}
	if set("insulin-type") {
		p.InsulinType = &f.insulinType
	}
	if set("uses-medication") {
		p.UsesMedication = &f.usesMedication
	}
	if set("activity-level") {
		a := domain.ActivityLevel(f.activityLevel)
		p.ActivityLevel = &a
	}
	if set("eating-habits") {
		e := domain.EatingHabits(f.eatingHabits)
		p.EatingHabits = &e
	}
	if set("consumes-alcohol") {
		p.ConsumesAlcohol = &f.consumesAlcohol
	}
	if set("smokes") {
		p.Smokes = &f.smokes
	}

	if err := patchValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			names := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				names = append(names, fe.Field())
			}
			return p, fmt.Errorf("invalid value for %s", strings.Join(names, ", "))
		}
		return p, err
	}
	return p, nil
}
