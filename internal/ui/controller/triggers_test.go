package controller

import (
	"testing"

	"github.com/Its-donkey/auth-toggle/internal/ui/view"
)

func TestShouldSuppressDefault(t *testing.T) {
	cases := []struct {
		tag, typ string
		want     bool
	}{
		{tag: "a", want: true},
		{tag: "A", want: true},
		{tag: "button", want: true},
		{tag: "button", typ: "submit", want: true},
		{tag: "button", typ: "button", want: false},
		{tag: "h2", want: false},
		{tag: "div", typ: "button", want: false},
	}
	for _, tc := range cases {
		if got := ShouldSuppressDefault(tc.tag, tc.typ); got != tc.want {
			t.Fatalf("ShouldSuppressDefault(%q, %q) = %v, want %v", tc.tag, tc.typ, got, tc.want)
		}
	}
}

func TestActivateTabPreventsDefaultPerPolicy(t *testing.T) {
	c, _ := newTestController(&fakeStore{}, &fakeLocation{})

	anchor := &fakeEvent{tag: "a"}
	c.ActivateTab(view.Register, anchor)
	if !anchor.prevented {
		t.Fatal("anchor navigation should be suppressed")
	}

	plain := &fakeEvent{tag: "button", attrs: map[string]string{"type": "button"}}
	c.ActivateTab(view.Login, plain)
	if plain.prevented {
		t.Fatal("type=button has no default action to suppress")
	}
	if c.Active() != view.Login {
		t.Fatalf("expected Login, got %v", c.Active())
	}
}

func TestActivateTabSavesAndRewritesHash(t *testing.T) {
	store := &fakeStore{}
	loc := &fakeLocation{}
	c, _ := newTestController(store, loc)

	c.ActivateTab(view.Register, &fakeEvent{tag: "h2"})

	if store.value != "register" || loc.hash != "#register" {
		t.Fatalf("expected save and hash update, got %q %q", store.value, loc.hash)
	}
}

func TestKeyTab(t *testing.T) {
	c, _ := newTestController(&fakeStore{}, &fakeLocation{})

	tab := &fakeEvent{tag: "h2"}
	c.KeyTab(view.Register, "Tab", tab)
	if tab.prevented || c.Active() != view.Login {
		t.Fatal("non-activating key must be ignored")
	}

	c.KeyTab(view.Register, " ", tab)
	if !tab.prevented || c.Active() != view.Register {
		t.Fatal("space should activate and suppress scrolling")
	}

	enter := &fakeEvent{tag: "h2"}
	c.KeyTab(view.Login, "Enter", enter)
	if !enter.prevented || c.Active() != view.Login {
		t.Fatal("enter should activate")
	}
}

func TestFollowSwitchLinkIgnoresUnknownTargets(t *testing.T) {
	store := &fakeStore{}
	c, page := newTestController(store, &fakeLocation{})

	for _, target := range []string{"", "Register", "signup", " login"} {
		evt := &fakeEvent{tag: "a"}
		c.FollowSwitchLink(target, evt)
		if !evt.prevented {
			t.Fatalf("switch link %q should still suppress navigation", target)
		}
	}
	if page.applied != 0 || store.saves != 0 {
		t.Fatalf("unknown targets must be ignored, applied=%d saves=%d", page.applied, store.saves)
	}

	c.FollowSwitchLink("register", &fakeEvent{tag: "a"})
	if c.Active() != view.Register || store.value != "register" {
		t.Fatalf("expected Register, got %v / %q", c.Active(), store.value)
	}
}
