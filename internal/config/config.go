package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type config struct {
	Production       bool          `env:"PRODUCTION" envDefault:"false"`
	Port             string        `env:"PORT" envDefault:"80"`
	PostgresUrl      string        `env:"POSTGRES_URL,required"`
	MigrateOnStart   bool          `env:"MIGRATE_ON_START" envDefault:"true"`
	RedisUrl         string        `env:"REDIS_URL" envDefault:"redis:6379"`
	Secret           string        `env:"SECRET,required"`
	GoogleAPIKey     string        `env:"GOOGLE_API_KEY" envDefault:""`
	GoogleCredsPath  string        `env:"GOOGLE_CREDENTIALS_PATH" envDefault:""`
	GoogleRelayURL   string        `env:"GOOGLE_RELAY_URL" envDefault:"http://localhost/relay/google-calendar"`
	CorsRelayURL     string        `env:"CORS_RELAY_URL" envDefault:"https://api.allorigins.win/get"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	ImportWindow     time.Duration `env:"IMPORT_WINDOW" envDefault:"4380h"`
	GoogleMaxResults int64         `env:"GOOGLE_MAX_RESULTS" envDefault:"250"`
	MinICSLength     int           `env:"MIN_ICS_LENGTH" envDefault:"50"`
	DefaultTimezone  string        `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`
	StrictDates      bool          `env:"STRICT_DATES" envDefault:"false"`
	DedupPolicy      string        `env:"DEDUP_POLICY" envDefault:"snapshot"`
	ImportSessionTTL time.Duration `env:"IMPORT_SESSION_TTL" envDefault:"5m"`
	MaxRecurrences   int           `env:"MAX_RECURRENCES" envDefault:"250"`
}

var conf config

func init() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func MigrateOnStart() bool {
	return conf.MigrateOnStart
}

func RedisURL() string {
	return conf.RedisUrl
}

func Secret() string {
	return conf.Secret
}

func GoogleAPIKey() string {
	return conf.GoogleAPIKey
}

func GoogleCredentialsPath() string {
	return conf.GoogleCredsPath
}

func GoogleRelayURL() string {
	return conf.GoogleRelayURL
}

func CorsRelayURL() string {
	return conf.CorsRelayURL
}

func FetchTimeout() time.Duration {
	return conf.FetchTimeout
}

func ImportWindow() time.Duration {
	return conf.ImportWindow
}

func GoogleMaxResults() int64 {
	return conf.GoogleMaxResults
}

func MinICSLength() int {
	return conf.MinICSLength
}

func DefaultTimezone() string {
	return conf.DefaultTimezone
}

func StrictDates() bool {
	return conf.StrictDates
}

func DedupPolicy() string {
	return conf.DedupPolicy
}

func ImportSessionTTL() time.Duration {
	return conf.ImportSessionTTL
}

func MaxRecurrences() int {
	return conf.MaxRecurrences
}
