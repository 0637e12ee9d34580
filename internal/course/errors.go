package course

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	jujuerrors "github.com/juju/errors"
	"reflect"
	"strings"
)

var (
	ErrNotFound   = errors.New("course not found")
	ErrValidation = errors.New("invalid course")
)

// NotFoundError is returned when no course exists for ID.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no course with id %d is available", e.ID)
}

// Is lets callers match both ErrNotFound and the generic juju NotFound kind.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == jujuerrors.NotFound
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid course %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsNotFound reports whether err signals a missing course.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the constraints every stored course must satisfy and returns
// a ValidationError for the first field that breaks them.
func Validate(c Course) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return "minimum value is " + fe.Param()
	case "max":
		return "maximum value is " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}
