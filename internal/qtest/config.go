package qtest

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
)

// ClientConfig is the configuration object for the qTest API client
type ClientConfig struct {
	Debug bool
	// Host is the qTest site, e.g. "https://acme.qtestnet.com". A missing scheme means https.
	Host    string
	Log     *zap.SugaredLogger
	Token   string
	Codec   *jsonutil.Codec
	NewUUID func() (uuid.UUID, error)
	Timeout time.Duration
}

// Validate checks the configuration for errors
func (cfg ClientConfig) Validate() error {
	if cfg.Log == nil {
		return errors.NewInternalError("missing logger")
	}

	if cfg.Host == "" {
		return errors.NewConfigurationError(
			"Missing qTest URL",
			"The qTest client needs to know which qTest site to submit to.",
			"Set the URL using the --url flag, the QTEST_URL environment variable, or the 'url' field of the "+
				"configuration file.",
		)
	}

	if _, err := cfg.baseURL(); err != nil {
		return errors.NewConfigurationError(
			"Invalid qTest URL",
			err.Error(),
			"Use the full address of your qTest site, e.g. https://acme.qtestnet.com",
		)
	}

	if cfg.Token == "" {
		return errors.NewConfigurationError(
			"Missing API key",
			"The qTest client authenticates using an API key, but none was configured.",
			"Set the API key using the --api-key flag or the QTEST_API_KEY environment variable.",
		)
	}

	return nil
}

// WithDefaults returns a copy of the configuration with defaults applied where necessary.
func (cfg ClientConfig) WithDefaults() ClientConfig {
	if cfg.NewUUID == nil {
		cfg.NewUUID = uuid.NewRandom
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Codec == nil {
		cfg.Codec = jsonutil.New(cfg.Log)
	}

	return cfg
}

func (cfg ClientConfig) baseURL() (*url.URL, error) {
	host := cfg.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if parsed.Host == "" {
		return nil, errors.NewInputError("%q has no host name", cfg.Host)
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	return parsed, nil
}
