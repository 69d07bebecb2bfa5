// Package server renders the auth page and serves the wasm bundle that drives it.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Its-donkey/auth-toggle/internal/config"
	"github.com/Its-donkey/auth-toggle/internal/ui/markup"
	"github.com/Its-donkey/auth-toggle/logging"
)

const logCategory = "server"

// Options configures the UI HTTP server.
type Options struct {
	Config config.Config
	Logger *logging.Logger
	// Templates overrides loading from Config.App.Templates.
	Templates map[string]*template.Template
}

type server struct {
	assetsDir   string
	stylesPath  string
	siteName    string
	widget      config.WidgetConfig
	templates   map[string]*template.Template
	currentYear int
	logger      *logging.Logger
}

type basePageData struct {
	PageTitle      string
	StylesheetPath string
	SiteName       string
	CurrentYear    int
}

type authPageData struct {
	basePageData
	StorageKey string
	LogLevel   string
}

func newServer(opts Options) (*server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	tmpl := opts.Templates
	if tmpl == nil {
		root, err := filepath.Abs(opts.Config.App.Templates)
		if err != nil {
			return nil, fmt.Errorf("resolve templates dir: %w", err)
		}
		loaded, err := loadTemplates(root)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		tmpl = loaded
	}
	if _, ok := tmpl["auth"]; !ok {
		return nil, errors.New("auth template missing")
	}
	assets, err := filepath.Abs(opts.Config.App.Assets)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}
	return &server{
		assetsDir:   assets,
		stylesPath:  "/styles.css",
		siteName:    opts.Config.App.Name,
		widget:      opts.Config.Widget,
		templates:   tmpl,
		currentYear: time.Now().Year(),
		logger:      logger,
	}, nil
}

// NewHandler builds the router without starting a listener.
func NewHandler(opts Options) (http.Handler, error) {
	srv, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	return srv.routes(), nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logging.NewHTTPLogger(s.logger).Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleAuth)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/styles.css", s.assetHandler("styles.css", "text/css; charset=utf-8"))
	r.Get("/wasm_exec.js", s.assetHandler("wasm_exec.js", "application/javascript"))
	r.Get("/main.wasm", s.assetHandler("main.wasm", "application/wasm"))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	srv, err := newServer(opts)
	if err != nil {
		return err
	}
	if _, err := srv.selfCheck(); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              opts.Config.Server.ListenAddr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info(logCategory, "serving auth page", map[string]any{
			"addr":   httpServer.Addr,
			"assets": srv.assetsDir,
		})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *server) pageData() authPageData {
	return authPageData{
		basePageData: basePageData{
			PageTitle:      s.siteName,
			StylesheetPath: s.stylesPath,
			SiteName:       s.siteName,
			CurrentYear:    s.currentYear,
		},
		StorageKey: s.widget.StorageKey,
		LogLevel:   s.widget.LogLevel,
	}
}

func (s *server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.templates["auth"].ExecuteTemplate(&buf, "base", s.pageData()); err != nil {
		s.logger.WithRequestID(logging.RequestID(r.Context())).
			WithCategory(logCategory).
			WithField("path", r.URL.Path).
			Error("render auth page", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// selfCheck renders the auth page once and warns about any structure the wasm
// client would reject or degrade on.
func (s *server) selfCheck() (markup.Report, error) {
	var buf bytes.Buffer
	if err := s.templates["auth"].ExecuteTemplate(&buf, "base", s.pageData()); err != nil {
		return markup.Report{}, fmt.Errorf("render auth page: %w", err)
	}
	report, err := markup.Inspect(&buf)
	if err != nil {
		return markup.Report{}, err
	}
	for _, problem := range report.Problems() {
		s.logger.Warn(logCategory, problem, map[string]any{"check": "markup"})
	}
	return report, nil
}

func (s *server) assetHandler(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.assetsDir, name)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		http.ServeFile(w, r, path)
	}
}
