//go:build js && wasm

package wasm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/Its-donkey/auth-toggle/internal/ui/view"
	"github.com/Its-donkey/auth-toggle/logging"
)

// DefaultStorageKey identifies the localStorage entry holding the last shown pane.
const DefaultStorageKey = "authView"

var errNoHistory = errors.New("history.replaceState unavailable")

// catchJS turns a thrown JS exception into an error on the enclosing function.
func catchJS(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = jsErr
			return
		}
		*err = fmt.Errorf("js: %v", r)
	}
}

func qs(selector string) js.Value {
	return Document.Call("querySelector", selector)
}

func attr(el js.Value, name string) string {
	if !el.Truthy() {
		return ""
	}
	v := el.Call("getAttribute", name)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func closest(el js.Value, selector string) js.Value {
	if !el.Truthy() {
		return js.Null()
	}
	return el.Call("closest", selector)
}

// domPresenter applies a view to the page. Visibility is set inline as well as
// through the container class so the widget works even if CSS nesting is off.
type domPresenter struct {
	wrapper       js.Value
	loginForm     js.Value
	registerForm  js.Value
	loginTitle    js.Value
	registerTitle js.Value
}

func (p domPresenter) Apply(v view.ActiveView) {
	isRegister := v == view.Register
	p.wrapper.Get("classList").Call("toggle", "register-active", isRegister)

	p.loginForm.Get("style").Set("display", displayFor(!isRegister))
	p.registerForm.Get("style").Set("display", displayFor(isRegister))

	applyTabState(p.loginTitle, !isRegister)
	applyTabState(p.registerTitle, isRegister)
}

func displayFor(shown bool) string {
	if shown {
		return ""
	}
	return "none"
}

func applyTabState(tab js.Value, selected bool) {
	if !tab.Truthy() {
		return
	}
	tabIndex := "-1"
	if selected {
		tabIndex = "0"
	}
	tab.Call("setAttribute", "aria-selected", fmt.Sprint(selected))
	tab.Call("setAttribute", "tabindex", tabIndex)
	tab.Get("classList").Call("toggle", "active", selected)
}

// localStore persists the view token in window.localStorage. Accessing storage
// throws when it is disabled, so every call recovers.
type localStore struct {
	key string
}

func (s localStore) Load() (value string, err error) {
	defer catchJS(&err)
	storage := js.Global().Get("localStorage")
	if !storage.Truthy() {
		return "", errors.New("localStorage unavailable")
	}
	v := storage.Call("getItem", s.key)
	if v.Type() != js.TypeString {
		return "", nil
	}
	return v.String(), nil
}

func (s localStore) Save(token string) (err error) {
	defer catchJS(&err)
	storage := js.Global().Get("localStorage")
	if !storage.Truthy() {
		return errors.New("localStorage unavailable")
	}
	storage.Call("setItem", s.key, token)
	return nil
}

type browserLocation struct{}

func (browserLocation) Hash() string {
	return js.Global().Get("location").Get("hash").String()
}

func (browserLocation) ReplaceHash(hash string) (err error) {
	defer catchJS(&err)
	history := js.Global().Get("history")
	if !history.Truthy() || history.Get("replaceState").Type() != js.TypeFunction {
		return errNoHistory
	}
	history.Call("replaceState", js.Null(), "", hash)
	return nil
}

func (browserLocation) AssignHash(hash string) {
	js.Global().Get("location").Set("hash", hash)
}

// domEvent adapts a DOM event to controller.Event using its currentTarget.
type domEvent struct {
	evt js.Value
}

func (e domEvent) Tag() string {
	target := e.evt.Get("currentTarget")
	if !target.Truthy() {
		return ""
	}
	return strings.ToLower(target.Get("tagName").String())
}

func (e domEvent) Attr(name string) string {
	return attr(e.evt.Get("currentTarget"), name)
}

func (e domEvent) PreventDefault() {
	e.evt.Call("preventDefault")
}

// alertNotifier shows both blocking notices and success indications with window.alert.
type alertNotifier struct{}

func (alertNotifier) Block(message string) {
	js.Global().Call("alert", message)
}

func (alertNotifier) Success(message string) {
	js.Global().Call("alert", message)
}

// consoleWriter forwards JSON log lines to the browser console, picking the
// console method from the entry level.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return len(p), nil
	}
	var entry logging.Entry
	if err := json.Unmarshal(p, &entry); err != nil {
		console.Call("log", string(p))
		return len(p), nil
	}
	method := "log"
	switch entry.Level {
	case logging.WARN.String():
		method = "warn"
	case logging.ERROR.String():
		method = "error"
	case logging.DEBUG.String():
		method = "debug"
	}
	console.Call(method, entry.Category+": "+entry.Message, strings.TrimSpace(string(p)))
	return len(p), nil
}
