package folio

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/eringen/folio/gemini"
)

// Config holds all configuration for an authoring server.
type Config struct {
	Addr string // Listen address (default "127.0.0.1:3000")

	SessionSecret string // Session cookie key (default: random per process)
	CookieSecure  bool   // Set true for HTTPS

	GeminiAPIKey  string        // Fallback key when a session has none
	GeminiModel   string        // Model name (default "gemini-2.0-flash")
	GeminiBaseURL string        // API root (default the public v1beta endpoint)
	GeminiPace    time.Duration // Minimum spacing between outbound calls (default 1s)

	PreviewDelay         time.Duration // Debounce before a preview re-render (default 1s)
	NoticeTTL            time.Duration // Transient notice lifetime (default 3s)
	WorkspaceTTL         time.Duration // Idle workspace eviction (default 12h)
	MaxUploadSize        int64         // Per-file upload ceiling in bytes (default 10MB)
	GenerationsPerMinute int           // Generation calls per session per minute (default 10)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:3000"
	}
	if c.SessionSecret == "" {
		c.SessionSecret = randomSecret()
	}
	if c.GeminiModel == "" {
		c.GeminiModel = gemini.DefaultModel
	}
	if c.GeminiBaseURL == "" {
		c.GeminiBaseURL = gemini.DefaultBaseURL
	}
	if c.GeminiPace == 0 {
		c.GeminiPace = time.Second
	}
	if c.PreviewDelay == 0 {
		c.PreviewDelay = time.Second
	}
	if c.NoticeTTL == 0 {
		c.NoticeTTL = 3 * time.Second
	}
	if c.WorkspaceTTL == 0 {
		c.WorkspaceTTL = 12 * time.Hour
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = 10 << 20
	}
	if c.GenerationsPerMinute == 0 {
		c.GenerationsPerMinute = 10
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the structured logger (default JSON to stderr).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithGenerator replaces the Gemini backend. fn receives the session's API
// key, which may be empty.
func WithGenerator(fn func(apiKey string) gemini.Generator) Option {
	return func(a *App) {
		a.newGenerator = fn
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
