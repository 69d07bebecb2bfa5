// Package controller keeps the auth widget's active pane consistent across
// the DOM, the stored preference and the URL fragment.
package controller

import (
	"errors"

	"github.com/Its-donkey/auth-toggle/internal/ui/view"
	"github.com/Its-donkey/auth-toggle/logging"
)

const logCategory = "auth-toggle"

// ErrStructureMissing reports that the container or one of the panes is absent.
var ErrStructureMissing = errors.New("auth toggle: .wrapper/.login-form/.register-form not found")

// Presenter renders a view: container flag, pane visibility and tab ARIA state.
type Presenter interface {
	Apply(v view.ActiveView)
}

// PreferenceStore persists the last shown pane. Both calls are best-effort.
type PreferenceStore interface {
	Load() (string, error)
	Save(token string) error
}

// Location reads and rewrites the URL fragment.
type Location interface {
	Hash() string
	// ReplaceHash swaps the fragment without adding a history entry.
	ReplaceHash(hash string) error
	// AssignHash sets the fragment directly; used when history replacement fails.
	AssignHash(hash string)
}

// Options tunes the side effects of SetView.
type Options struct {
	Save       bool
	UpdateHash bool
}

// DefaultOptions persists the view and leaves the fragment alone.
func DefaultOptions() Options {
	return Options{Save: true}
}

// Layout describes what the page provides for the widget.
type Layout struct {
	ContainerFound    bool
	LoginPaneFound    bool
	RegisterPaneFound bool
	// PanesNested reports whether both panes live inside the container.
	PanesNested bool
}

// Controller owns the active view. It is driven from a single-threaded event
// loop and does no locking.
type Controller struct {
	active    view.ActiveView
	enabled   bool
	presenter Presenter
	store     PreferenceStore
	location  Location
	logger    *logging.Logger
}

// New builds a Controller. A nil store disables persistence and a nil logger
// drops diagnostics.
func New(presenter Presenter, store PreferenceStore, location Location, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		enabled:   presenter != nil && location != nil,
		presenter: presenter,
		store:     store,
		location:  location,
		logger:    logger,
	}
}

// Diagnose checks the page layout. A missing container or pane disables the
// controller and returns ErrStructureMissing; panes outside the container only
// produce a warning since the presenter also toggles visibility inline.
func (c *Controller) Diagnose(layout Layout) error {
	if !layout.ContainerFound || !layout.LoginPaneFound || !layout.RegisterPaneFound {
		c.enabled = false
		c.logger.Warn(logCategory, ErrStructureMissing.Error(), map[string]any{
			"container": layout.ContainerFound,
			"login":     layout.LoginPaneFound,
			"register":  layout.RegisterPaneFound,
		})
		return ErrStructureMissing
	}
	if !layout.PanesNested {
		c.logger.Warn(logCategory, "forms are not inside .wrapper; CSS toggling may not apply. Inline fallback is active.", nil)
	}
	return nil
}

// Enabled reports whether the controller reacts to input.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Active returns the view currently presented.
func (c *Controller) Active() view.ActiveView {
	return c.active
}

// SetView presents v and, depending on opts, persists it and rewrites the
// fragment. Storage and history failures are discarded.
func (c *Controller) SetView(v view.ActiveView, opts Options) {
	if !c.enabled {
		return
	}
	c.active = v
	c.presenter.Apply(v)

	if opts.Save && c.store != nil {
		if err := c.store.Save(v.Token()); err != nil {
			c.logger.Debug(logCategory, "preference not saved", map[string]any{"error": err.Error()})
		}
	}

	if opts.UpdateHash {
		hash := v.Hash()
		if c.location.Hash() != hash {
			if err := c.location.ReplaceHash(hash); err != nil {
				c.location.AssignHash(hash)
			}
		}
	}
}

// Start resolves the initial view: a valid stored preference wins, otherwise
// the fragment decides. Nothing is re-saved and the fragment is not touched.
func (c *Controller) Start() {
	if !c.enabled {
		return
	}
	initial := view.FromHash(c.location.Hash())
	if c.store != nil {
		if token, err := c.store.Load(); err == nil {
			if stored, ok := view.Parse(token); ok {
				initial = stored
			}
		}
	}
	c.SetView(initial, Options{})
}

// HashChanged follows external navigation without writing the preference.
func (c *Controller) HashChanged() {
	if !c.enabled {
		return
	}
	c.SetView(view.FromHash(c.location.Hash()), Options{})
}

// Login is the legacy entry point exposed as window.loginFunction.
func (c *Controller) Login() {
	c.activate(view.Login)
}

// Register is the legacy entry point exposed as window.registerFunction.
func (c *Controller) Register() {
	c.activate(view.Register)
}

func (c *Controller) activate(v view.ActiveView) {
	c.SetView(v, Options{Save: true, UpdateHash: true})
}
