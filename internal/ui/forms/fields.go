// Package forms implements the login and register validation gate used by the
// auth widget. Validation here is presentation-only: required fields must be
// non-empty and the terms checkbox must be ticked.
package forms

// Field names an input by its element id.
type Field string

// Fields of the login and register forms, keyed by the id of their input.
const (
	LoginEmail       Field = "log-email"
	LoginPassword    Field = "log-pass"
	RegisterName     Field = "reg-name"
	RegisterEmail    Field = "reg-email"
	RegisterPassword Field = "reg-pass"
	Agree            Field = "agree"
)

// LoginFields lists the fields owned by the login form in display order.
var LoginFields = []Field{LoginEmail, LoginPassword}

// RegisterFields lists the fields owned by the register form in display order.
var RegisterFields = []Field{RegisterName, RegisterEmail, RegisterPassword, Agree}

// Group returns the selector of the element that carries the field's error flag.
func (f Field) Group() string {
	if f == Agree {
		return ".form-cols"
	}
	return ".input-box"
}

// Flags tracks which fields are currently flagged with an error.
type Flags struct {
	flagged map[Field]bool
	// OnChange, when set, is called every time a field's flag changes.
	OnChange func(f Field, flagged bool)
}

// NewFlags returns an empty flag set.
func NewFlags() *Flags {
	return &Flags{flagged: make(map[Field]bool)}
}

// Flag marks f as invalid.
func (fl *Flags) Flag(f Field) {
	fl.set(f, true)
}

// Clear removes the error flag from f only.
func (fl *Flags) Clear(f Field) {
	fl.set(f, false)
}

// ClearAll removes the flags of the given fields.
func (fl *Flags) ClearAll(fields ...Field) {
	for _, f := range fields {
		fl.set(f, false)
	}
}

// Flagged reports whether f currently carries an error flag.
func (fl *Flags) Flagged(f Field) bool {
	return fl.flagged[f]
}

func (fl *Flags) set(f Field, flagged bool) {
	if fl.flagged == nil {
		fl.flagged = make(map[Field]bool)
	}
	if flagged {
		fl.flagged[f] = true
	} else {
		delete(fl.flagged, f)
	}
	if fl.OnChange != nil {
		fl.OnChange(f, flagged)
	}
}
