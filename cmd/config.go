package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/retry"
	"orderflow/internal/pkg/workerpool"
)

const (
	DefaultHTTPPort  = "8080"
	DefaultDBHost    = "localhost"
	DefaultDBPort    = "5432"
	DefaultDBSslMode = "disable"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Pool          workerpool.Config
	Email         ChannelSettings
	SMS           ChannelSettings
	Retry         retry.Policy
	SendTimeout   time.Duration
	StatsSchedule string
}

// ChannelSettings is the per channel part of the environment.
type ChannelSettings struct {
	Enabled bool
	URL     string
}

// LookupFunc reads one variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadConfig reads the environment, falling back to defaults for unset
// variables. Every malformed value is reported, not just the first.
func LoadConfig(lookup LookupFunc) (Config, error) {
	r := envReader{lookup: lookup}
	cfg := Config{
		HTTPPort:   r.string("HTTP_PORT", DefaultHTTPPort),
		DBHost:     r.string("DB_HOST", DefaultDBHost),
		DBPort:     r.string("DB_PORT", DefaultDBPort),
		DBUser:     r.string("DB_USER", ""),
		DBPassword: r.string("DB_PASSWORD", ""),
		DBName:     r.string("DB_NAME", ""),
		DBSslMode:  r.string("DB_SSLMODE", DefaultDBSslMode),
		Pool: workerpool.Config{
			CoreWorkers:   r.int("NOTIFY_POOL_CORE", workerpool.DefaultCoreWorkers),
			MaxWorkers:    r.int("NOTIFY_POOL_MAX", workerpool.DefaultMaxWorkers),
			QueueCapacity: r.int("NOTIFY_QUEUE_CAPACITY", workerpool.DefaultQueueCapacity),
			KeepAlive:     r.duration("NOTIFY_KEEP_ALIVE", workerpool.DefaultKeepAlive),
		},
		Email: ChannelSettings{
			Enabled: r.bool("NOTIFY_EMAIL_ENABLED", true),
			URL:     r.string("NOTIFY_EMAIL_URL", ""),
		},
		SMS: ChannelSettings{
			Enabled: r.bool("NOTIFY_SMS_ENABLED", true),
			URL:     r.string("NOTIFY_SMS_URL", ""),
		},
		Retry: retry.Policy{
			MaxAttempts: r.int("NOTIFY_MAX_ATTEMPTS", retry.DefaultMaxAttempts),
			BaseDelay:   r.duration("NOTIFY_BASE_DELAY", retry.DefaultBaseDelay),
			Multiplier:  r.float("NOTIFY_MULTIPLIER", retry.DefaultMultiplier),
			MaxDelay:    r.duration("NOTIFY_MAX_DELAY", retry.DefaultMaxDelay),
		},
		SendTimeout:   r.duration("NOTIFY_SEND_TIMEOUT", notification.DefaultSendTimeout),
		StatsSchedule: r.string("NOTIFY_STATS_SCHEDULE", jobs.DefaultStatsSchedule),
	}
	if err := errors.Join(r.errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the lib/pq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ChannelConfigs builds the email and SMS channel snapshots. A disabled
// channel without a URL is left out; any channel with a URL is kept so that
// a disabled one still shows up as skipped in the stats.
func (c Config) ChannelConfigs() ([]notification.ChannelConfig, error) {
	settings := []struct {
		name string
		kind notification.ChannelKind
		ChannelSettings
	}{
		{name: "email", kind: notification.KindEmail, ChannelSettings: c.Email},
		{name: "sms", kind: notification.KindSMS, ChannelSettings: c.SMS},
	}

	var (
		configs []notification.ChannelConfig
		errList []error
	)
	for _, s := range settings {
		if !s.Enabled && strings.TrimSpace(s.URL) == "" {
			continue
		}
		cfg := notification.NewChannelConfig(s.name, s.kind, s.URL)
		cfg.Enabled = s.Enabled
		cfg.Retry = c.Retry
		cfg.SendTimeout = c.SendTimeout
		if err := cfg.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}
		configs = append(configs, cfg)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return configs, nil
}

type envReader struct {
	lookup  LookupFunc
	errList []error
}

func (r *envReader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (r *envReader) string(key, def string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return f
}

func (r *envReader) bool(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}
