package frontend

import (
	"fmt"
	"strconv"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/remote"
)

const (
	DefaultCustomerPollInterval = 7 * time.Second
	DefaultOperatorPollInterval = 5 * time.Second
	DefaultNATSURL              = "nats://localhost:4222"
)

// Settings is the typed view of the service configuration.
type Settings struct {
	BistroURL            string
	BistroTimeout        time.Duration
	BistroReadRetries    int
	NATSEnabled          bool
	NATSURL              string
	CustomerPollInterval time.Duration
	OperatorPollInterval time.Duration
	MenuCommitResync     bool
}

// DefaultSettings returns the settings used when a key is absent.
func DefaultSettings() Settings {
	return Settings{
		BistroTimeout:        remote.DefaultTimeout,
		BistroReadRetries:    remote.DefaultReadRetries,
		NATSURL:              DefaultNATSURL,
		CustomerPollInterval: DefaultCustomerPollInterval,
		OperatorPollInterval: DefaultOperatorPollInterval,
	}
}

// LoadSettings reads the frontend keys from config.
func LoadSettings(config *apt.Config) (Settings, error) {
	if config == nil {
		return DefaultSettings(), nil
	}
	return loadSettings(config.GetString)
}

type lookupFunc func(key string) (string, bool)

func loadSettings(get lookupFunc) (Settings, error) {
	s := DefaultSettings()

	if v, ok := get("services.bistro.url"); ok {
		s.BistroURL = v
	}
	if v, ok := get("nats.url"); ok && v != "" {
		s.NATSURL = v
	}

	var err error
	if s.NATSEnabled, err = parseBool(get, "nats.enabled", false); err != nil {
		return s, err
	}
	if s.MenuCommitResync, err = parseBool(get, "menu.commit.resync", false); err != nil {
		return s, err
	}
	if s.BistroTimeout, err = parseInterval(get, "services.bistro.timeout", remote.DefaultTimeout); err != nil {
		return s, err
	}
	if s.BistroReadRetries, err = parseRetries(get, "services.bistro.read.retries", remote.DefaultReadRetries); err != nil {
		return s, err
	}
	if s.CustomerPollInterval, err = parseInterval(get, "poll.customer.interval", DefaultCustomerPollInterval); err != nil {
		return s, err
	}
	if s.OperatorPollInterval, err = parseInterval(get, "poll.operator.interval", DefaultOperatorPollInterval); err != nil {
		return s, err
	}

	return s, nil
}

func parseBool(get lookupFunc, key string, def bool) (bool, error) {
	raw, ok := get(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return v, nil
}

// parseRetries reads a read-retry budget. Writes are never retried.
func parseRetries(get lookupFunc, key string, def int) (int, error) {
	raw, ok := get(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def, fmt.Errorf("%s: invalid retry count %q", key, raw)
	}
	return n, nil
}

func parseInterval(get lookupFunc, key string, def time.Duration) (time.Duration, error) {
	raw, ok := get(key)
	if !ok || raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	if d <= 0 {
		return def, fmt.Errorf("%s: must be positive", key)
	}
	return d, nil
}
