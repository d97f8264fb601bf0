package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config points the suites at a running server. Suites skip when HTTPAddr is empty.
type Config struct {
	HTTPAddr  string `envconfig:"E2E_HTTP_ADDR"`
	GRPCAddr  string `envconfig:"E2E_GRPC_ADDR"`
	JWTSecret string `envconfig:"JWT_SECRET"`
	JWTIssuer string `envconfig:"JWT_ISSUER" default:"pair-chat"`
	// E2E_DEBUG_JSON dumps gRPC request and response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS colours the step headers
	Colours bool          `envconfig:"E2E_COLOURS" default:"true"`
	Timeout time.Duration `envconfig:"E2E_TIMEOUT" default:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
