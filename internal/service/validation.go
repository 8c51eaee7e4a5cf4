package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zoraaver/wlogger/internal/domain"
)

var (
	validate     = newValidator()
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return domain.Day(fl.Field().String()).Index() >= 0
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		inc := sl.Current().Interface().(domain.AutoIncrement)
		if inc.Field != domain.IncrementWeight && inc.Amount != math.Trunc(inc.Amount) {
			sl.ReportError(inc.Amount, "amount", "Amount", "whole", "")
		}
	}, domain.AutoIncrement{})

	return v
}

// validateStruct checks s against its validate tags and returns the first
// failure as a *domain.ValidationError with a dotted field path.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return domain.NewValidationError(fieldPath(fe.Namespace()), validationMessage(fe))
}

// fieldPath turns "WorkoutPlan.weeks[0].workouts[1].day_of_week" into
// "weeks.0.workouts.1.day_of_week".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "weekday":
		return fmt.Sprintf("%v is not a day of the week", fe.Value())
	case "whole":
		return fmt.Sprintf("%s must be a whole number", fe.Field())
	case "email":
		return "Invalid email"
	case "eqfield":
		return "Confirm password does not match password"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
