//go:build integration

package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	AppID     string
	AppSecret string
	AppToken  string
	BaseURL   string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		AppID:     os.Getenv("BITABLE_APP_ID"),
		AppSecret: os.Getenv("BITABLE_APP_SECRET"),
		AppToken:  os.Getenv("BITABLE_APP_TOKEN"),
		BaseURL:   os.Getenv("BITABLE_BASE_URL"),
		Verbose:   os.Getenv("BITABLE_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test unless a live Bitable app is configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.AppID == "" || config.AppSecret == "" || config.AppToken == "" {
		t.Skip("BITABLE_APP_ID, BITABLE_APP_SECRET and BITABLE_APP_TOKEN must be set, skipping integration test")
	}
}

// ClientConfig returns the library configuration for the live app
func (config *TestConfig) ClientConfig(logger bitable.Logger) *bitable.Config {
	return &bitable.Config{
		AppID:     config.AppID,
		AppSecret: config.AppSecret,
		AppToken:  config.AppToken,
		BaseURL:   config.BaseURL,
		Debug:     config.Verbose,
		Logger:    logger,
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// testLogger forwards client logs to the test log
type testLogger struct {
	t *testing.T
}

func (l testLogger) log(level, msg string, fields map[string]interface{}) {
	l.t.Logf("[%s] %s %v", level, msg, fields)
}

func (l testLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l testLogger) Info(msg string, fields map[string]interface{}) { l.log("INFO", msg, fields) }
func (l testLogger) Warn(msg string, fields map[string]interface{}) { l.log("WARN", msg, fields) }
func (l testLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
