//go:build !js && !wasm

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Its-donkey/auth-toggle/internal/config"
	"github.com/Its-donkey/auth-toggle/internal/ui/server"
	"github.com/Its-donkey/auth-toggle/logging"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	listen := flag.String("listen", "", "address to serve the auth page (overrides config)")
	assetsDir := flag.String("assets", "", "directory containing main.wasm, wasm_exec.js and styles.css")
	templatesDir := flag.String("templates", "", "path to the html/template files")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if v := strings.TrimSpace(*listen); v != "" {
		if err := cfg.Server.SetListen(v); err != nil {
			fmt.Fprintf(os.Stderr, "-listen: %v\n", err)
			os.Exit(2)
		}
	}
	if *assetsDir != "" {
		cfg.App.Assets = *assetsDir
	}
	if *templatesDir != "" {
		cfg.App.Templates = *templatesDir
	}

	logger := logging.New("ui-serve", logging.ParseLevel(cfg.Logging.Level), os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, server.Options{Config: cfg, Logger: logger}); err != nil {
		logger.Error("server", "ui-serve exited", err, nil)
		os.Exit(1)
	}
}
