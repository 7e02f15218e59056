package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/calref/inboxcal/internal/models"
)

var (
	// Validate is a shared validator instance.
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("smart_mode", validateSmartMode); err != nil {
		panic(fmt.Sprintf("failed to register smart_mode validator: %v", err))
	}
}

// validateSmartMode validates that a string is a known SmartMode.
func validateSmartMode(fl validator.FieldLevel) bool {
	return models.SmartMode(fl.Field().String()).Valid()
}

// ValidateSmartMode validates a SmartMode string value.
func ValidateSmartMode(value string) error {
	if !models.SmartMode(value).Valid() {
		return fmt.Errorf("invalid mode: %s (must be 'auto', 'rules', or 'llm')", value)
	}
	return nil
}

// SanitizeText trims whitespace and removes control characters except
// newline and tab.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
