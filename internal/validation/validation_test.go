package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	assert.Error(t, ValidateRequired("", "location"))
	assert.Error(t, ValidateRequired("   ", "location"))
	assert.NoError(t, ValidateRequired("Kathmandu", "location"))
}

func TestValidateMaxLength(t *testing.T) {
	assert.NoError(t, ValidateMaxLength("short", 10, "location"))
	assert.Error(t, ValidateMaxLength(strings.Repeat("x", 11), 10, "location"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a@b.io"))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestRecordValidation(t *testing.T) {
	v := RecordValidation{}

	assert.NoError(t, v.ValidateWeek(1))
	assert.Error(t, v.ValidateWeek(0))
	assert.Error(t, v.ValidateWeek(-3))

	assert.NoError(t, v.ValidateLength(0))
	assert.NoError(t, v.ValidateLength(12.5))
	assert.Error(t, v.ValidateLength(-0.1))

	assert.NoError(t, v.ValidateLocation("Ring Road"))
	assert.Error(t, v.ValidateLocation(""))
	assert.Error(t, v.ValidateLocation(strings.Repeat("x", 201)))

	assert.NoError(t, v.ValidateStatus("completed"))
	assert.Error(t, v.ValidateStatus("archived"))
}

func TestInviteValidation(t *testing.T) {
	v := InviteValidation{}

	assert.NoError(t, v.ValidateInviteEmail("new@baato.io"))
	assert.Error(t, v.ValidateInviteEmail(""))
	assert.Error(t, v.ValidateInviteEmail("nope"))

	assert.NoError(t, v.ValidateRole("admin"))
	assert.NoError(t, v.ValidateRole("Viewer"))
	assert.Error(t, v.ValidateRole("owner"))
}
