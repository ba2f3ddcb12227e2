package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/image/colornames"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		_, err := ResolveColor(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every section and joins the field failures into one
// ErrInvalidConfig error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// ResolveColor accepts #rrggbb or a CSS color name and returns lower-case
// #rrggbb.
func ResolveColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if hexColor.MatchString(s) {
		return strings.ToLower(s), nil
	}
	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B), nil
}
