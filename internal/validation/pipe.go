// Package validation checks request bodies against struct-tag schemas.
package validation

import (
	"errors"
	"strings"
	"sync"

	"soupbox/internal/middleware"
	"soupbox/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FailedMessage is the only message a client sees for a rejected body.
const FailedMessage = "Validation failed"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Pipe validates values of T. Field-level detail is logged at debug level and
// never returned to the caller.
type Pipe[T any] struct {
	v *validator.Validate
}

func NewPipe[T any]() *Pipe[T] {
	return &Pipe[T]{v: instance()}
}

// Parse decodes the request body into a T and validates it.
func (p *Pipe[T]) Parse(c *fiber.Ctx) (*T, error) {
	var out T
	if err := c.BodyParser(&out); err != nil {
		middleware.Logger.DebugContext(c.UserContext(), "request body rejected", "error", err)
		return nil, models.NewValidationError(FailedMessage)
	}
	if err := p.Validate(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate checks value against the struct tags of T.
func (p *Pipe[T]) Validate(value *T) error {
	if value == nil {
		return models.NewValidationError(FailedMessage)
	}
	err := p.v.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
		middleware.Logger.Debug("validation failed", "fields", fields)
	}
	return models.NewValidationError(FailedMessage)
}
