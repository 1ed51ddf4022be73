package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/baatolabs/baatometrics-api/internal/domain/record"
	"github.com/baatolabs/baatometrics-api/internal/domain/team"
)

// ValidateRequired validates that a field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMaxLength validates the maximum length of a string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateEmail validates basic email format
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("email must have a valid format")
	}
	return nil
}

// RecordValidation contains validations specific to mapping records
type RecordValidation struct{}

// ValidateWeek checks the caller-assigned week number. The store does not
// enforce uniqueness or contiguity; callers own the numbering.
func (v RecordValidation) ValidateWeek(week int) error {
	if week < 1 {
		return errors.New("week must be at least 1")
	}
	return nil
}

// ValidateLength checks the mapped distance
func (v RecordValidation) ValidateLength(length float64) error {
	if length < 0 {
		return errors.New("length must be non-negative")
	}
	return nil
}

// ValidateLocation checks the location label
func (v RecordValidation) ValidateLocation(location string) error {
	if err := ValidateRequired(location, "location"); err != nil {
		return err
	}
	return ValidateMaxLength(location, 200, "location")
}

// ValidateStatus checks the record lifecycle status
func (v RecordValidation) ValidateStatus(status string) error {
	if _, ok := record.StatusFromString(status); !ok {
		return fmt.Errorf("status must be one of locked, current, completed")
	}
	return nil
}

// InviteValidation contains validations specific to team invitations
type InviteValidation struct{}

// ValidateInviteEmail checks the invitee address
func (v InviteValidation) ValidateInviteEmail(email string) error {
	if err := ValidateRequired(email, "email"); err != nil {
		return err
	}
	return ValidateEmail(email)
}

// ValidateRole checks an invitation role
func (v InviteValidation) ValidateRole(role string) error {
	if _, ok := team.RoleFromString(role); !ok {
		return fmt.Errorf("role must be one of admin, editor, viewer")
	}
	return nil
}
