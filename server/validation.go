package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// newValidator makes validator reporting json field names and knowing the "password" rule
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password", validPassword); err != nil {
		panic(fmt.Sprintf("can't register password validation: %v", err)) // only fails on empty tag
	}
	return v
}

// validPassword requires at least 8 characters with a letter and a digit
func validPassword(fl validator.FieldLevel) bool {
	pass := fl.Field().String()
	if len(pass) < 8 || len(pass) > 72 { // bcrypt ignores anything past 72 bytes
		return false
	}
	var letter, digit bool
	for _, r := range pass {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// decodeAndValidate reads json body into v and validates it
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := decodeJSON(r, v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// validationError turns validator errors into a readable message, first failed field wins
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid request: %w", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "email":
		return fmt.Errorf("%s must be a valid email address", fe.Field())
	case "password":
		return fmt.Errorf("%s must be 8 to 72 characters long and contain a letter and a digit", fe.Field())
	case "http_url":
		return fmt.Errorf("%s must be a valid http(s) url", fe.Field())
	case "max":
		return fmt.Errorf("%s is too long", fe.Field())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
