package book

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	isbnKeyChars = regexp.MustCompile(`^[0-9Xx]+$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("isbnkey", validateISBNKey)
}

// validateISBNKey accepts digits and X, with optional hyphens or spaces as separators.
// Check digits are not verified; the catalog decides whether a key exists.
func validateISBNKey(fl validator.FieldLevel) bool {
	isbn := fl.Field().String()
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	return isbn != "" && isbnKeyChars.MatchString(isbn)
}

type ISBNRequest struct {
	ISBN string `validate:"required,max=32,isbnkey"`
}

type SearchRequest struct {
	Title string `validate:"required,max=256"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "", Message: err.Error()}}
	}

	var errors []ValidationError
	for _, err := range verrs {
		field := err.Field()
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "isbnkey":
			message = fmt.Sprintf("%s must contain only digits, X, hyphens or spaces", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		errors = append(errors, ValidationError{
			Field:   strings.ToLower(field),
			Message: message,
		})
	}
	return errors
}
