package client

import (
	"github.com/1broseidon/imagen/common"
	"github.com/1broseidon/imagen/internal/logging"
)

// ClientOption is a function type for configuring the Client.
// It allows for flexible and extensible client configuration.
type ClientOption func(*Client)

// WithAPIKey sets the credential passed to the provider.
// The client never reads the environment itself; callers resolve the key
// (see the config package) and hand it over here.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithModel sets the model used for image requests.
// If not set, DefaultModel is used.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEndpoint overrides the API endpoint used by the default provider.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithProviderFactory replaces the function used to construct the provider.
// The factory is invoked lazily, on the first request that has a credential.
func WithProviderFactory(factory ProviderFactory) ClientOption {
	return func(c *Client) {
		c.newProvider = factory
	}
}

// WithLogger sets the logger for the client.
// The provided logger will be used for all logging operations within the client.
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLogLevel sets the log level for the client.
// This option will only take effect if the client's logger supports setting log levels.
func WithLogLevel(level common.LogLevel) ClientOption {
	return func(c *Client) {
		if logger, ok := c.logger.(interface{ SetLevel(common.LogLevel) }); ok {
			logger.SetLevel(level)
		}
	}
}
