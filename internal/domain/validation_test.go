package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEmail(t *testing.T) {
	assert.NoError(t, CheckEmail("ada@example.com"))
	assert.NoError(t, CheckEmail("  ada@example.com "))
	assert.EqualError(t, CheckEmail(""), MsgRequired)
	assert.EqualError(t, CheckEmail("ada"), MsgInvalidEmail)
	assert.EqualError(t, CheckEmail("Ada <ada@example.com>"), MsgInvalidEmail)
	assert.EqualError(t, CheckEmail("ada@localhost"), MsgInvalidEmail)
}

func TestCheckPhone(t *testing.T) {
	assert.NoError(t, CheckPhone("+375 (29) 111-22-33"))
	assert.NoError(t, CheckPhone("80291112233"))
	assert.EqualError(t, CheckPhone(" "), MsgRequired)
	assert.EqualError(t, CheckPhone("call me"), MsgInvalidPhone)
	assert.EqualError(t, CheckPhone("+1 (2) 3"), MsgInvalidPhone)
	assert.EqualError(t, CheckPhone(strings.Repeat("1", MaxPhoneLength+1)), MsgTooLong)
}

func TestValidateContact(t *testing.T) {
	var v ValidationError
	ValidateContact(" ", "Lovelace", "12", "ada@example.com", &v)

	assert.Equal(t, []string{FieldFirstName, FieldPhone}, v.FieldNames())
	assert.Equal(t, MsgRequired, v.Fields[FieldFirstName])
	assert.Equal(t, MsgInvalidPhone, v.Fields[FieldPhone])
}
