// Package validation turns raw request payloads into typed service inputs.
// Failures are reported as *Error, which matches common.ErrorValidation.
package validation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Go regexp has no lookahead, so each character class is its own check.
var (
	upperRegexp        = regexp.MustCompile(`[A-Z]`)
	lowerRegexp        = regexp.MustCompile(`[a-z]`)
	digitOrOtherRegexp = regexp.MustCompile(`[\d\W]`)
)

const (
	MaxEmailLength    = 255
	MinPasswordLength = 8
)

// Error maps a request field to the first problem found with it.
type Error struct {
	Fields map[string]string
}

// NewError reports a single invalid field.
func NewError(field, msg string) *Error {
	return &Error{Fields: map[string]string{field: msg}}
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return common.ErrorValidation }

type validator struct {
	errors map[string]string
}

func newValidator() *validator {
	return &validator{errors: make(map[string]string)}
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &Error{Fields: v.errors}
}

// checkCond records msg for key unless cond holds or key already failed.
func (v *validator) checkCond(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

func (v *validator) checkEmail(email string) {
	v.checkCond(email != "", "email", "must be provided")
	v.checkCond(len(email) <= MaxEmailLength, "email", "must be at most 255 characters long")
	v.checkCond(emailRegexp.MatchString(email), "email", "must be a valid email address")
}

func (v *validator) checkPassword(password string) {
	v.checkCond(password != "", "password", "must be provided")
	v.checkCond(len(password) >= MinPasswordLength, "password", "must be at least 8 characters long")
	v.checkCond(upperRegexp.MatchString(password) &&
		lowerRegexp.MatchString(password) &&
		digitOrOtherRegexp.MatchString(password),
		"password", "must contain an uppercase letter, a lowercase letter and a digit or special character")
}

func (v *validator) checkTitle(title string) {
	v.checkCond(title != "", "title", "must be provided")
}
