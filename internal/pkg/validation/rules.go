package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
)

// Field length limits shared by the group and post forms.
var (
	GroupNameMaxLength   = 100
	TopicMaxLength       = 100
	DescriptionMaxLength = 2000
	PostTextMaxLength    = 5000
)

// StringValidation checks a single text field.
type StringValidation struct {
	Value  string
	MaxLen int
}

// NewStringValidation creates a required validation for value. Surrounding
// whitespace never counts towards the value.
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: strings.TrimSpace(value)}
}

// WithMaxLength sets the maximum length in runes
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// Present reports whether the trimmed value is non-empty.
func (v *StringValidation) Present() bool {
	return v.Value != ""
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}
	if v.MaxLen > 0 && utf8.RuneCountInString(v.Value) > v.MaxLen {
		return false
	}
	return true
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ResolveCategory maps an optional form value to a Category, applying the
// default when the value is empty.
func ResolveCategory(raw string) (models.Category, error) {
	if IsBlank(raw) {
		return models.DefaultCategory, nil
	}
	c, ok := models.ParseCategory(raw)
	if !ok {
		return "", apperrors.NewCustomError(apperrors.ErrInvalidCategory,
			"Category must be one of: study, club, event")
	}
	return c, nil
}

// OptionalCategory parses a filter value; empty means "no filter".
func OptionalCategory(raw string) (models.Category, error) {
	if IsBlank(raw) {
		return "", nil
	}
	return ResolveCategory(raw)
}
