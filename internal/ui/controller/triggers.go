package controller

import (
	"strings"

	"github.com/Its-donkey/auth-toggle/internal/ui/view"
)

// Event is the subset of a DOM event the triggers need.
type Event interface {
	// Tag is the tag name of the element the listener is bound to.
	Tag() string
	// Attr returns an attribute of that element, or "" when absent.
	Attr(name string) string
	PreventDefault()
}

// ShouldSuppressDefault reports whether activating a control would navigate or
// submit: anchors always do, buttons do unless typed "button".
func ShouldSuppressDefault(tag, typeAttr string) bool {
	switch strings.ToLower(tag) {
	case "a":
		return true
	case "button":
		return typeAttr != "button"
	default:
		return false
	}
}

// KeyActivates reports whether a keydown key activates a tab control.
func KeyActivates(key string) bool {
	return key == "Enter" || key == " "
}

// ActivateTab handles a click on a tab control.
func (c *Controller) ActivateTab(v view.ActiveView, evt Event) {
	if !c.enabled {
		return
	}
	if evt != nil && ShouldSuppressDefault(evt.Tag(), evt.Attr("type")) {
		evt.PreventDefault()
	}
	c.activate(v)
}

// KeyTab handles keydown on a tab control. Only Enter and Space activate.
func (c *Controller) KeyTab(v view.ActiveView, key string, evt Event) {
	if !c.enabled || !KeyActivates(key) {
		return
	}
	if evt != nil {
		evt.PreventDefault()
	}
	c.activate(v)
}

// FollowSwitchLink handles a click on a switch link declaring target. The
// link's default action is always suppressed; unknown targets are ignored.
func (c *Controller) FollowSwitchLink(target string, evt Event) {
	if !c.enabled {
		return
	}
	if evt != nil {
		evt.PreventDefault()
	}
	v, ok := view.Parse(target)
	if !ok {
		return
	}
	c.activate(v)
}
