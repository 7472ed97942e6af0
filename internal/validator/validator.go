package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/utils"
)

var interestTagRe = regexp.MustCompile(`^[a-z][a-z_]*[a-z]$`)

// Validator wraps go-playground/validator with the domain enum rules so
// out-of-enum values are rejected before they reach the store.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerDomainRules()
	return v
}

// Validate runs struct validation and translates failures into field errors.
func (v *Validator) Validate(s interface{}) utils.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs utils.ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, utils.ValidationError{
			Field:   fe.Field(),
			Message: v.errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errs
}

func (v *Validator) registerDomainRules() {
	v.validate.RegisterValidation("course_category", func(fl validator.FieldLevel) bool {
		category := models.CourseCategory(fl.Field().String())
		switch category {
		case models.CategoryBusiness, models.CategoryDevelopment, models.CategoryPersonalDevelopment:
			return true
		}
		return false
	})

	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := models.UserRole(fl.Field().String())
		return role == models.RoleTeacher || role == models.RoleStudent
	})

	v.validate.RegisterValidation("presence_status", func(fl validator.FieldLevel) bool {
		status := models.PresenceStatus(fl.Field().String())
		switch status {
		case models.StatusActive, models.StatusBusy, models.StatusDoNotDisturb, models.StatusAway:
			return true
		}
		return false
	})

	v.validate.RegisterValidation("tracker_profile", func(fl validator.FieldLevel) bool {
		profile := models.TrackerProfile(fl.Field().String())
		return profile == models.ProfileAuthor || profile == models.ProfileLearner
	})

	// eg: data_analysis, math, personal_development
	v.validate.RegisterValidation("interest_tag", func(fl validator.FieldLevel) bool {
		return interestTagRe.MatchString(fl.Field().String())
	})
}

func (v *Validator) errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "course_category":
		return "must be one of [business, development, personal_development]"
	case "user_role":
		return "must be one of [teacher, student]"
	case "presence_status":
		return "must be one of [active, busy, dnd, away]"
	case "tracker_profile":
		return "must be one of [author, learner]"
	case "interest_tag":
		return "must be lowercase words delimited by underscores"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
