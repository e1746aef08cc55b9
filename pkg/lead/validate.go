package lead

import (
	"regexp"
	"strings"
)

// Field names used as FieldErrors keys.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
)

// Human-readable messages surfaced next to the offending input.
const (
	msgNameRequired = "Please enter your name"
	msgEmailInvalid = "Please enter a valid email address"
	msgPhoneInvalid = "Please enter a valid phone number"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// FieldErrors maps a field name to the message shown for it. Entries
// are cleared one at a time as the user edits the field again.
type FieldErrors map[string]string

func (e FieldErrors) ClearField(field string) {
	delete(e, field)
}

// Fields holds the raw form input fed to Validate.
type Fields struct {
	FullName string
	Email    string
	Phone    string
}

// Validate applies the client-side rules: name must be non-empty after
// trimming, email must look like local@domain.tld, phone must be 10-15
// digits with an optional leading + once whitespace is stripped. It
// has no side effects; ok is true iff no field failed.
func Validate(f Fields) (errs FieldErrors, ok bool) {
	errs = FieldErrors{}

	if strings.TrimSpace(f.FullName) == "" {
		errs[FieldFullName] = msgNameRequired
	}

	if !emailPattern.MatchString(f.Email) {
		errs[FieldEmail] = msgEmailInvalid
	}

	if !phonePattern.MatchString(stripWhitespace(f.Phone)) {
		errs[FieldPhone] = msgPhoneInvalid
	}

	return errs, len(errs) == 0
}

// ValidateRecord runs the same rules against a full Record. Used by the
// submit endpoint as a second line of defense against malformed-but-
// present fields from non-browser callers.
func ValidateRecord(r Record) (FieldErrors, bool) {
	return Validate(Fields{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
	})
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
