package ai

import "fmt"

// DefaultTemperature keeps answers factual and consistent between runs.
const DefaultTemperature float32 = 0.2

// Config is handed to a vendor adapter at construction time. The host owns the
// secret; adapters never log or persist it.
type Config struct {
	APIKey      string
	Model       string
	Temperature *float32
	// BaseURL overrides the vendor endpoint (proxies, compatible gateways, tests).
	BaseURL   string
	MaxTokens int
}

// TemperatureOrDefault returns the configured temperature or DefaultTemperature.
func (c Config) TemperatureOrDefault() float32 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// String keeps the key out of %v / %s output.
func (c Config) String() string {
	key := "[empty]"
	if c.APIKey != "" {
		key = "[redacted]"
	}
	return fmt.Sprintf("model=%s base_url=%s api_key=%s", c.Model, c.BaseURL, key)
}
