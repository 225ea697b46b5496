package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings splits comma-separated values
    "time"    // time represents windows and TTLs as durations

    "github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required variables are enforced in Load();
// everything else falls back to a sensible default so the service can start
// with only a database and a JWT secret configured.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign JWTs
    AccessTTLMin int    // access token time-to-live in minutes
    BcryptCost   int    // bcrypt cost for password hashing

    RateLimitRequests int           // max requests per client per window
    RateLimitWindow   time.Duration // rate limit window length

    ItemCacheTTL time.Duration // TTL for single item cache entries
    ListCacheTTL time.Duration // TTL for item list cache entries

    AllowedOrigins []string // CORS allowed origins
    ForceHTTPS     bool     // redirect plain HTTP to HTTPS when true

    RabbitURL string // AMQP broker URL, empty disables event publishing
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when it
// exists; real environment variables take precedence.  Required variables
// are enforced by must() and missing values cause the program to exit with
// a fatal log message.
func Load() Config {
    _ = godotenv.Load() // a missing .env is fine; the environment may be set externally

    return Config{
        Env:          envStr("APP_ENV", "dev"),
        Port:         envStr("APP_PORT", "8080"),
        DBUser:       must("DB_USER"),
        DBPass:       os.Getenv("DB_PASS"), // empty allowed
        DBHost:       must("DB_HOST"),
        DBPort:       must("DB_PORT"),
        DBName:       must("DB_NAME"),
        JWTSecret:    must("JWT_SECRET"),
        AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 30),
        BcryptCost:   envInt("BCRYPT_COST", 12),

        RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 60),
        RateLimitWindow:   envDur("RATE_LIMIT_WINDOW", time.Minute),

        ItemCacheTTL: envDur("ITEM_CACHE_TTL", 10*time.Minute),
        ListCacheTTL: envDur("LIST_CACHE_TTL", 5*time.Minute),

        AllowedOrigins: splitCSV(envStr("ALLOWED_ORIGINS", "*")),
        ForceHTTPS:     envBool("FORCE_HTTPS", false),

        RabbitURL: os.Getenv("RABBITMQ_URL"),
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

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    switch v {
    case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
        return true
    case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
        return false
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
        return dur
    }
    return d
}

func splitCSV(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
