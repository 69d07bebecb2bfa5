// Package view defines the two-valued pane selector shared by the auth widget.
package view

import "strings"

// ActiveView identifies which pane of the auth widget is presented.
type ActiveView int

const (
	// Login shows the sign-in pane. It is the zero value so an unset view is Login.
	Login ActiveView = iota
	// Register shows the sign-up pane.
	Register
)

const (
	// LoginToken is the persisted and declared token for Login.
	LoginToken = "login"
	// RegisterToken is the persisted and declared token for Register.
	RegisterToken = "register"
)

// Token returns the literal stored in the preference store and used by switch links.
func (v ActiveView) Token() string {
	if v == Register {
		return RegisterToken
	}
	return LoginToken
}

// Hash returns the URL fragment, including the leading '#', that selects v.
func (v ActiveView) Hash() string {
	return "#" + v.Token()
}

func (v ActiveView) String() string {
	return v.Token()
}

// Parse maps an exact token to a view. Anything other than "login" or
// "register" is rejected; matching is case-sensitive.
func Parse(token string) (ActiveView, bool) {
	switch token {
	case LoginToken:
		return Login, true
	case RegisterToken:
		return Register, true
	default:
		return Login, false
	}
}

// FromHash returns the view implied by a URL fragment. Only "#register"
// (any case) selects Register; everything else, including "", selects Login.
func FromHash(hash string) ActiveView {
	if strings.EqualFold(hash, "#"+RegisterToken) {
		return Register
	}
	return Login
}
