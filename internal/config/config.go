package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time‑to‑live in minutes
    RefreshTTLDays int    // refresh token time‑to‑live in days
    BcryptCost     int    // bcrypt cost for password hashing

    // LINE messaging credentials.  Both are optional: a missing channel
    // secret makes the webhook reject every delivery, and a missing channel
    // token makes the push sender a no-op.  The server still starts so the
    // REST API stays usable without a LINE channel.
    LineChannelSecret string // secret for webhook signature verification
    LineChannelToken  string // long-lived token for the Messaging API

    // PublicBaseURL is the externally reachable origin of the web frontend,
    // used to build deep links inside LINE flex messages (e.g. the booking
    // form).  Optional; link buttons are omitted when empty.
    PublicBaseURL string

    // OpenAI-compatible chat completion settings for answering free-form
    // farmer questions.  When the key is empty the bot falls back to a
    // canned reply instead of calling out.
    OpenAIEndpoint string // API base URL, default https://api.openai.com
    OpenAIKey      string // API key (empty disables the AI fallback)
    OpenAIModel    string // model name, default gpt-4o-mini

    UploadDir string // directory for stored payment slip uploads
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),             // environment (dev/test/prod)
        Port:           must("APP_PORT"),            // port to bind the HTTP server
        DBUser:         must("DB_USER"),             // database user
        DBPass:         os.Getenv("DB_PASS"),        // database password (empty allowed)
        DBHost:         must("DB_HOST"),             // database host
        DBPort:         must("DB_PORT"),             // database port
        DBName:         must("DB_NAME"),             // database name
        JWTSecret:      must("JWT_SECRET"),          // secret used for signing JWTs
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
        BcryptCost:     mustInt("BCRYPT_COST"),      // bcrypt cost factor

        LineChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"),
        LineChannelToken:  os.Getenv("LINE_CHANNEL_TOKEN"),
        PublicBaseURL:     os.Getenv("PUBLIC_BASE_URL"),

        OpenAIEndpoint: envDefault("OPENAI_ENDPOINT", "https://api.openai.com"),
        OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
        OpenAIModel:    envDefault("OPENAI_MODEL", "gpt-4o-mini"),

        UploadDir: envDefault("UPLOAD_DIR", "./uploads"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// envDefault returns the environment variable's value or a fallback when unset.
func envDefault(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
