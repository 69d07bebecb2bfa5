package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/Its-donkey/auth-toggle/logging"
)

const (
	// AgreementNotice is the blocking message shown when the terms box is unticked.
	AgreementNotice     = "Please agree to the terms & conditions"
	loginSuccessMessage = "Login successful!"
	registerSuccessText = "Registration successful!"
	logCategory         = "auth-forms"
)

// ErrValidation is returned when a required field blocks the submission.
var ErrValidation = errors.New("required fields missing")

// LoginRequest is what a valid login form hands to the Authenticator.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is what a valid register form hands to the Authenticator.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticator receives accepted submissions. The widget ships without a real
// backend; plug one in here.
type Authenticator interface {
	Login(ctx context.Context, req LoginRequest) error
	Register(ctx context.Context, req RegisterRequest) error
}

// Notifier surfaces messages to the user.
type Notifier interface {
	// Block shows a message the user has to acknowledge.
	Block(message string)
	// Success shows the local success indication.
	Success(message string)
}

// LogAuthenticator records attempts without contacting anything. Passwords are never logged.
type LogAuthenticator struct {
	Logger *logging.Logger
}

// Login implements Authenticator.
func (a LogAuthenticator) Login(_ context.Context, req LoginRequest) error {
	a.Logger.Info(logCategory, "login attempt", map[string]any{"email": req.Email})
	return nil
}

// Register implements Authenticator.
func (a LogAuthenticator) Register(_ context.Context, req RegisterRequest) error {
	a.Logger.Info(logCategory, "registration attempt", map[string]any{"name": req.Name, "email": req.Email})
	return nil
}

// Submitter runs the all-or-nothing gate for both forms.
type Submitter struct {
	flags  *Flags
	auth   Authenticator
	notify Notifier
	logger *logging.Logger
}

// NewSubmitter wires the gate. flags may be shared with the DOM binding so
// flag changes are reflected immediately.
func NewSubmitter(flags *Flags, auth Authenticator, notify Notifier, logger *logging.Logger) *Submitter {
	if flags == nil {
		flags = NewFlags()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if auth == nil {
		auth = LogAuthenticator{Logger: logger}
	}
	return &Submitter{flags: flags, auth: auth, notify: notify, logger: logger}
}

// Flags exposes the current error flags.
func (s *Submitter) Flags() *Flags {
	return s.flags
}

// EditField clears the flag of the edited field only.
func (s *Submitter) EditField(f Field) {
	s.flags.Clear(f)
}

// SubmitLogin validates the login form and, when it passes, hands the
// credentials to the Authenticator.
func (s *Submitter) SubmitLogin(ctx context.Context, in LoginInput) error {
	s.flags.ClearAll(LoginFields...)
	req, errs := ValidateLogin(in)
	for _, f := range errs.Fields() {
		s.flags.Flag(f)
	}
	if errs.Any() {
		return ErrValidation
	}
	if err := s.auth.Login(ctx, req); err != nil {
		s.logger.Error(logCategory, "login hand-off failed", err, nil)
		return fmt.Errorf("login: %w", err)
	}
	s.success(loginSuccessMessage)
	return nil
}

// SubmitRegister validates the register form. An unticked agreement also
// raises a blocking notice.
func (s *Submitter) SubmitRegister(ctx context.Context, in RegisterInput) error {
	s.flags.ClearAll(RegisterFields...)
	req, errs := ValidateRegister(in)
	for _, f := range errs.Fields() {
		s.flags.Flag(f)
	}
	if errs.Agree && s.notify != nil {
		s.notify.Block(AgreementNotice)
	}
	if errs.Any() {
		return ErrValidation
	}
	if err := s.auth.Register(ctx, req); err != nil {
		s.logger.Error(logCategory, "registration hand-off failed", err, nil)
		return fmt.Errorf("register: %w", err)
	}
	s.success(registerSuccessText)
	return nil
}

func (s *Submitter) success(message string) {
	if s.notify != nil {
		s.notify.Success(message)
	}
}
