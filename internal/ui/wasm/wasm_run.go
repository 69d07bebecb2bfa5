//go:build js && wasm

// Package wasm binds the auth widget to the browser DOM.
package wasm

import (
	"strings"
	"syscall/js"

	"github.com/Its-donkey/auth-toggle/internal/ui/controller"
	"github.com/Its-donkey/auth-toggle/internal/ui/forms"
	"github.com/Its-donkey/auth-toggle/logging"
)

var (
	// Document references the global browser document for DOM interactions.
	Document js.Value
	// Handlers stores bound js.Func callbacks so they stay reachable for the page's lifetime.
	Handlers []js.Func
)

// RunApp bootstraps the auth widget and blocks forever.
func RunApp() {
	done := make(chan struct{})
	Document = js.Global().Get("document")

	if ready := Document.Get("readyState").String(); ready == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(this js.Value, args []js.Value) any {
			onReady.Release()
			start()
			return nil
		})
		Document.Call("addEventListener", "DOMContentLoaded", onReady)
	} else {
		start()
	}
	<-done
}

func start() {
	wrapper := qs(".wrapper")
	loginForm := qs(".login-form")
	registerForm := qs(".register-form")

	logger := logging.New("auth-toggle", logging.ParseLevel(attr(wrapper, "data-log-level")), consoleWriter{})

	storageKey := strings.TrimSpace(attr(wrapper, "data-storage-key"))
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}

	presenter := domPresenter{
		wrapper:       wrapper,
		loginForm:     loginForm,
		registerForm:  registerForm,
		loginTitle:    qs(".title-login"),
		registerTitle: qs(".title-register"),
	}
	ctrl := controller.New(presenter, localStore{key: storageKey}, browserLocation{}, logger)

	layout := controller.Layout{
		ContainerFound:    wrapper.Truthy(),
		LoginPaneFound:    loginForm.Truthy(),
		RegisterPaneFound: registerForm.Truthy(),
	}
	if layout.ContainerFound && layout.LoginPaneFound && layout.RegisterPaneFound {
		layout.PanesNested = wrapper.Call("contains", loginForm).Bool() && wrapper.Call("contains", registerForm).Bool()
	}
	if err := ctrl.Diagnose(layout); err != nil {
		return
	}

	exposeLegacyEntryPoints(ctrl)
	bindTabs(ctrl, presenter)
	bindSwitchLinks(ctrl)

	flags := forms.NewFlags()
	flags.OnChange = reflectFieldError
	submitter := forms.NewSubmitter(flags, forms.LogAuthenticator{Logger: logger}, alertNotifier{}, logger)
	bindFieldEdits(submitter)
	bindSubmissions(submitter, loginForm, registerForm)

	ctrl.Start()
	on(js.Global(), "hashchange", func(js.Value) {
		ctrl.HashChanged()
	})
}
