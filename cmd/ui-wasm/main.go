//go:build js && wasm

package main

import "github.com/Its-donkey/auth-toggle/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
