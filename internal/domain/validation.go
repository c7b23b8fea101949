package domain

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field validation messages shown next to the offending input
const (
	MsgRequired     = "Required field"
	MsgTooLong      = "Value is too long"
	MsgInvalidEmail = "Invalid email address"
	MsgInvalidPhone = "Invalid phone number"
)

var (
	errRequired     = errors.New(MsgRequired)
	errTooLong      = errors.New(MsgTooLong)
	errInvalidEmail = errors.New(MsgInvalidEmail)
	errInvalidPhone = errors.New(MsgInvalidPhone)
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,}$`)

// CheckName validates a first or last name
func CheckName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return errTooLong
	}
	return nil
}

// CheckEmail validates a bare email address
func CheckEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired
	}
	if len(s) > MaxEmailLength {
		return errTooLong
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
		return errInvalidEmail
	}
	return nil
}

// CheckPhone validates a phone number: digits with optional leading + and separators
func CheckPhone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired
	}
	if len(s) > MaxPhoneLength {
		return errTooLong
	}
	if !phonePattern.MatchString(s) {
		return errInvalidPhone
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 {
		return errInvalidPhone
	}
	return nil
}

// ValidateContact checks the visitor's contact fields into v
func ValidateContact(firstName, lastName, phone, email string, v *ValidationError) {
	if err := CheckName(firstName); err != nil {
		v.Add(FieldFirstName, err.Error())
	}
	if err := CheckName(lastName); err != nil {
		v.Add(FieldLastName, err.Error())
	}
	if err := CheckPhone(phone); err != nil {
		v.Add(FieldPhone, err.Error())
	}
	if err := CheckEmail(email); err != nil {
		v.Add(FieldEmail, err.Error())
	}
}
