package forms

import "strings"

// LoginInput holds the raw values read from the login form.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput holds the raw values read from the register form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Agree    bool
}

// LoginErrors records the required login fields that were empty.
type LoginErrors struct {
	Email    bool
	Password bool
}

// Fields returns the flagged fields.
func (e LoginErrors) Fields() []Field {
	var out []Field
	if e.Email {
		out = append(out, LoginEmail)
	}
	if e.Password {
		out = append(out, LoginPassword)
	}
	return out
}

// Any reports whether the submission must be blocked.
func (e LoginErrors) Any() bool {
	return e.Email || e.Password
}

// RegisterErrors records the required register fields that were empty or unticked.
type RegisterErrors struct {
	Name     bool
	Email    bool
	Password bool
	Agree    bool
}

// Fields returns the flagged fields.
func (e RegisterErrors) Fields() []Field {
	var out []Field
	if e.Name {
		out = append(out, RegisterName)
	}
	if e.Email {
		out = append(out, RegisterEmail)
	}
	if e.Password {
		out = append(out, RegisterPassword)
	}
	if e.Agree {
		out = append(out, Agree)
	}
	return out
}

// Any reports whether the submission must be blocked.
func (e RegisterErrors) Any() bool {
	return e.Name || e.Email || e.Password || e.Agree
}

// ValidateLogin trims the email (never the password) and checks both are present.
func ValidateLogin(in LoginInput) (LoginRequest, LoginErrors) {
	req := LoginRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	return req, LoginErrors{
		Email:    req.Email == "",
		Password: req.Password == "",
	}
}

// ValidateRegister trims name and email, keeps the password verbatim and
// requires the agreement checkbox.
func ValidateRegister(in RegisterInput) (RegisterRequest, RegisterErrors) {
	req := RegisterRequest{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	return req, RegisterErrors{
		Name:     req.Name == "",
		Email:    req.Email == "",
		Password: req.Password == "",
		Agree:    !in.Agree,
	}
}
