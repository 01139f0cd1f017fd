// ABOUTME: Entry point for the vigor-site web server
// ABOUTME: Serves the public site, admin back-office and chat API

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/vigorlabs/vigor-site/internal/admin"
	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/chat"
	"github.com/vigorlabs/vigor-site/internal/config"
	"github.com/vigorlabs/vigor-site/internal/ratelimit"
	"github.com/vigorlabs/vigor-site/internal/seed"
	"github.com/vigorlabs/vigor-site/internal/store"
	"github.com/vigorlabs/vigor-site/internal/web"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
        _
 __   _(_) __ _  ___  _ __
 \ \ / / |/ _' |/ _ \| '__|
  \ V /| | (_| | (_) | |
   \_/ |_|\__, |\___/|_|
          |___/
`

// getConfigPath returns the path to the config file.
// Priority: VIGOR_CONFIG env var > ./vigor.yaml
func getConfigPath() string {
	if envPath := os.Getenv("VIGOR_CONFIG"); envPath != "" {
		return envPath
	}
	return "vigor.yaml"
}

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: vigor-site <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve                         Start the web server")
		fmt.Println("  init                          Write a default config file")
		fmt.Println("  seed [--file seed.toml]       Ensure admin user and load starter content")
		fmt.Println("  create-admin --email EMAIL --name NAME [--role ROLE]")
		fmt.Println("                                Create a back-office user")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "seed":
		err = runSeed(ctx)
	case "create-admin":
		err = runCreateAdmin(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	green.Print("    ▶ ")
	if cfg.Chat.APIKey != "" {
		fmt.Println("Chat:     configured")
	} else {
		fmt.Println("Chat:     not configured (static replies)")
	}
	fmt.Println()

	logger.Info("starting vigor-site",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	authenticator := auth.NewAuthenticator([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, cfg.Auth.SecureCookies)
	limiter := ratelimit.New(cfg.Chat.RateLimit, cfg.Chat.RateWindow)
	defer limiter.Close()
	chatClient := chat.NewClient(cfg.Chat.APIKey)

	mux := http.NewServeMux()
	web.NewSite(st, chatClient, limiter).RegisterRoutes(mux)
	admin.NewAdmin(st, authenticator).RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           requestLog(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// requestLog tags every request with an id and logs method, path, status
// and duration.
func requestLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Debug("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

// runInit writes a commented default config file with a random JWT secret.
func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return fmt.Errorf("generating JWT secret: %w", err)
	}
	jwtSecret := base64.StdEncoding.EncodeToString(secretBytes)

	configContent := fmt.Sprintf(`# vigor-site configuration
# Generated by vigor-site init

server:
  http_addr: ":8080"
  base_url: "http://localhost:8080"

database:
  path: "data/vigor.db"

auth:
  jwt_secret: "%s"
  token_ttl: "168h"
  secure_cookies: false

chat:
  # api_key: "${GEMINI_API_KEY}"
  rate_limit: 20
  rate_window: "60s"

logging:
  level: "info"
  format: "text"
`, jwtSecret)

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Created config: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  vigor-site seed     # create admin user and starter content")
	fmt.Println("  vigor-site serve    # start the server")
	return nil
}

// runSeed ensures the admin user from ADMIN_EMAIL/ADMIN_PASSWORD and loads
// an optional TOML seed file.
func runSeed(ctx context.Context) error {
	var seedFile string
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--file" || arg == "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("--file requires a value")
			}
			seedFile = args[i+1]
			i++
		case strings.HasPrefix(arg, "--file="):
			seedFile = strings.TrimPrefix(arg, "--file=")
		default:
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	seeder := seed.New(st)
	green := color.New(color.FgGreen)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		if err := seeder.EnsureAdmin(ctx, adminEmail, adminPassword, os.Getenv("ADMIN_NAME"), ""); err != nil {
			return err
		}
		green.Printf("  ✓ Admin user: %s\n", adminEmail)
	} else {
		fmt.Println("  ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
	}

	if seedFile != "" {
		if err := seeder.LoadFile(ctx, seedFile); err != nil {
			return err
		}
		green.Printf("  ✓ Seed file: %s\n", seedFile)
	}

	return nil
}

// runCreateAdmin creates a back-office user, prompting for the password.
func runCreateAdmin(ctx context.Context) error {
	var email, name, role string
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--email":
			if i+1 >= len(args) {
				return fmt.Errorf("--email requires a value")
			}
			email = args[i+1]
			i++
		case strings.HasPrefix(arg, "--email="):
			email = strings.TrimPrefix(arg, "--email=")
		case arg == "--name":
			if i+1 >= len(args) {
				return fmt.Errorf("--name requires a value")
			}
			name = args[i+1]
			i++
		case strings.HasPrefix(arg, "--name="):
			name = strings.TrimPrefix(arg, "--name=")
		case arg == "--role":
			if i+1 >= len(args) {
				return fmt.Errorf("--role requires a value")
			}
			role = args[i+1]
			i++
		case strings.HasPrefix(arg, "--role="):
			role = strings.TrimPrefix(arg, "--role=")
		default:
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}

	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if name == "" {
		name = email
	}
	if role == "" {
		role = store.RoleSuperAdmin
	}
	if role != store.RoleSuperAdmin && role != store.RoleContentManager {
		return fmt.Errorf("role must be %s or %s", store.RoleSuperAdmin, store.RoleContentManager)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{Email: email, PasswordHash: hash, Name: name, Role: role}
	if err := st.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return fmt.Errorf("user %s already exists", email)
		}
		return fmt.Errorf("creating user: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Created %s user: %s\n", role, email)
	return nil
}
