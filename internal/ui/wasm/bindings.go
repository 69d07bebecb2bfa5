//go:build js && wasm

package wasm

import (
	"context"
	"syscall/js"

	"github.com/Its-donkey/auth-toggle/internal/ui/controller"
	"github.com/Its-donkey/auth-toggle/internal/ui/forms"
	"github.com/Its-donkey/auth-toggle/internal/ui/view"
)

// on registers fn for event on target and keeps the callback alive.
func on(target js.Value, event string, fn func(evt js.Value)) {
	if !target.Truthy() {
		return
	}
	handler := js.FuncOf(func(this js.Value, args []js.Value) any {
		evt := js.Undefined()
		if len(args) > 0 {
			evt = args[0]
		}
		fn(evt)
		return nil
	})
	Handlers = append(Handlers, handler)
	target.Call("addEventListener", event, handler)
}

func exposeLegacyEntryPoints(ctrl *controller.Controller) {
	loginFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ctrl.Login()
		return nil
	})
	registerFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ctrl.Register()
		return nil
	})
	Handlers = append(Handlers, loginFn, registerFn)
	js.Global().Set("loginFunction", loginFn)
	js.Global().Set("registerFunction", registerFn)
}

func bindTabs(ctrl *controller.Controller, p domPresenter) {
	tabs := []struct {
		el js.Value
		v  view.ActiveView
	}{
		{el: p.loginTitle, v: view.Login},
		{el: p.registerTitle, v: view.Register},
	}
	for _, tab := range tabs {
		if !tab.el.Truthy() {
			continue
		}
		tab.el.Call("setAttribute", "role", "tab")
		if !tab.el.Call("hasAttribute", "tabindex").Bool() {
			tab.el.Call("setAttribute", "tabindex", "0")
		}
		v := tab.v
		on(tab.el, "click", func(evt js.Value) {
			ctrl.ActivateTab(v, domEvent{evt: evt})
		})
		on(tab.el, "keydown", func(evt js.Value) {
			ctrl.KeyTab(v, evt.Get("key").String(), domEvent{evt: evt})
		})
	}
}

func bindSwitchLinks(ctrl *controller.Controller) {
	links := Document.Call("querySelectorAll", ".switch-link")
	for i := 0; i < links.Length(); i++ {
		link := links.Index(i)
		on(link, "click", func(evt js.Value) {
			ctrl.FollowSwitchLink(attr(link, "data-view"), domEvent{evt: evt})
		})
	}
}

func reflectFieldError(f forms.Field, flagged bool) {
	group := closest(Document.Call("getElementById", string(f)), f.Group())
	if !group.Truthy() {
		return
	}
	group.Get("classList").Call("toggle", "error", flagged)
}

func bindFieldEdits(s *forms.Submitter) {
	for _, f := range []forms.Field{forms.LoginEmail, forms.LoginPassword, forms.RegisterName, forms.RegisterEmail, forms.RegisterPassword} {
		field := f
		on(Document.Call("getElementById", string(field)), "input", func(js.Value) {
			s.EditField(field)
		})
	}
	on(Document.Call("getElementById", string(forms.Agree)), "change", func(js.Value) {
		s.EditField(forms.Agree)
	})
}

func bindSubmissions(s *forms.Submitter, loginForm, registerForm js.Value) {
	on(loginForm, "submit", func(evt js.Value) {
		evt.Call("preventDefault")
		_ = s.SubmitLogin(context.Background(), forms.LoginInput{
			Email:    inputValue(forms.LoginEmail),
			Password: inputValue(forms.LoginPassword),
		})
	})
	on(registerForm, "submit", func(evt js.Value) {
		evt.Call("preventDefault")
		_ = s.SubmitRegister(context.Background(), forms.RegisterInput{
			Name:     inputValue(forms.RegisterName),
			Email:    inputValue(forms.RegisterEmail),
			Password: inputValue(forms.RegisterPassword),
			Agree:    inputChecked(forms.Agree),
		})
	})
}

func inputValue(f forms.Field) string {
	el := Document.Call("getElementById", string(f))
	if !el.Truthy() {
		return ""
	}
	return el.Get("value").String()
}

func inputChecked(f forms.Field) bool {
	el := Document.Call("getElementById", string(f))
	return el.Truthy() && el.Get("checked").Truthy()
}
