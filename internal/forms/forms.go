// Package forms validates user input submitted through HTML forms.
package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is matched by every *Error.
var ErrInvalid = errors.New("invalid input")

// Error lists the failing field names with the rule each one broke.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *Error) Is(target error) bool { return target == ErrInvalid }

// Movie is the add/edit movie form.
type Movie struct {
	Title string `form:"title" validate:"required,max=60"`
	Year  string `form:"year" validate:"required,max=4"`
}

// Settings is the rename form. Length counts characters, not bytes.
type Settings struct {
	Name string `form:"name" validate:"required,max=20"`
}

// Admin is the administrator username accepted by the admin command. It
// matches the width of users.username.
type Admin struct {
	Username string `validate:"required,max=20"`
}

var validate = validator.New()

// Validate checks v against its validate tags and returns *Error on failure.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return &Error{Fields: fields}
}
