package domain

import (
	"fmt"
	"strings"
)

const MinPasswordLength = 6

// ValidationError carries the list of fields that failed validation so the
// HTTP boundary can return them in the error body.
type ValidationError struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// ValidateRegistration checks the role-specific required fields of a
// registration payload. Regular users need a first and last name; business
// users need a business name, a valid business type and an address.
func ValidateRegistration(input RegisterInput) *ValidationError {
	var fields []string

	if !isValidEmail(input.Email) {
		fields = append(fields, "email")
	}
	if len(input.Password) < MinPasswordLength {
		fields = append(fields, "password")
	}

	role := UserRole(input.Role)
	if !role.IsValid() {
		fields = append(fields, "role")
		if len(fields) > 0 {
			return NewValidationError("invalid registration data", fields...)
		}
	}

	switch role {
	case RoleRegular:
		if strings.TrimSpace(input.FirstName) == "" {
			fields = append(fields, "first_name")
		}
		if strings.TrimSpace(input.LastName) == "" {
			fields = append(fields, "last_name")
		}
	case RoleBusiness:
		if strings.TrimSpace(input.BusinessName) == "" {
			fields = append(fields, "business_name")
		}
		if !BusinessType(input.BusinessType).IsValid() {
			fields = append(fields, "business_type")
		}
		if strings.TrimSpace(input.Address) == "" {
			fields = append(fields, "address")
		}
	}

	if len(fields) > 0 {
		return NewValidationError("invalid registration data", fields...)
	}
	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	if !strings.Contains(domainPart, ".") || strings.HasPrefix(domainPart, ".") || strings.HasSuffix(domainPart, ".") {
		return false
	}
	return !strings.ContainsAny(email, " \t\n")
}
