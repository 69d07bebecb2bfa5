package view

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want ActiveView
		ok   bool
	}{
		{in: "login", want: Login, ok: true},
		{in: "register", want: Register, ok: true},
		{in: "Register", want: Login, ok: false},
		{in: " login", want: Login, ok: false},
		{in: "", want: Login, ok: false},
		{in: "signup", want: Login, ok: false},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Parse(%q) = %v,%v; want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFromHash(t *testing.T) {
	cases := map[string]ActiveView{
		"#register":  Register,
		"#REGISTER":  Register,
		"#Register":  Register,
		"#login":     Login,
		"":           Login,
		"#":          Login,
		"register":   Login,
		"#register/": Login,
	}
	for hash, want := range cases {
		if got := FromHash(hash); got != want {
			t.Fatalf("FromHash(%q) = %v, want %v", hash, got, want)
		}
	}
}

func TestTokenAndHash(t *testing.T) {
	if Login.Token() != "login" || Register.Token() != "register" {
		t.Fatalf("unexpected tokens: %q %q", Login.Token(), Register.Token())
	}
	if Login.Hash() != "#login" || Register.Hash() != "#register" {
		t.Fatalf("unexpected hashes: %q %q", Login.Hash(), Register.Hash())
	}
	var zero ActiveView
	if zero != Login {
		t.Fatalf("zero view should be Login")
	}
}
