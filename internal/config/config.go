package config

import (
	"os"
	"strconv"
)

// Runtime holds all runtime configuration from CLI flags, environment
// variables, and .env file
type Runtime struct {
	// Port the raw request-line protocol listens on
	Port string

	// HTTPPort the HTTP API listens on; "0" disables the HTTP API
	HTTPPort string

	// MaxConns caps concurrent protocol connections
	MaxConns string

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadRuntime loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntime(port, httpPort, maxConns string) *Runtime {
	return &Runtime{
		Port:      getValue(port, "GIMLI_PORT", "1337"),
		HTTPPort:  getValue(httpPort, "GIMLI_HTTP_PORT", "8080"),
		MaxConns:  getValue(maxConns, "GIMLI_MAX_CONNS", "256"),
		LogLevel:  getValue("", "GIMLI_LOG_LEVEL", "INFO"),
		LogFormat: getValue("", "GIMLI_LOG_FORMAT", "text"),
		LogOutput: getValue("", "GIMLI_LOG_OUTPUT", "stdout"),
	}
}

// Valid returns a map of field and human readable explanation of what's wrong
func (c *Runtime) Valid() map[string]string {
	problems := make(map[string]string, 3)

	if problem := checkPort(c.Port); problem != "" {
		problems["port"] = problem
	}

	if c.HTTPPort != "0" {
		if problem := checkPort(c.HTTPPort); problem != "" {
			problems["http-port"] = problem
		}
	}

	n, err := strconv.Atoi(c.MaxConns)
	if err != nil {
		problems["max-conns"] = "should be a valid number: " + err.Error()
	} else if n <= 0 {
		problems["max-conns"] = "should be more than zero"
	}

	return problems
}

// HTTPEnabled reports whether the HTTP API surface should be started.
func (c *Runtime) HTTPEnabled() bool {
	return c.HTTPPort != "0"
}

// MaxConnsLimit returns the connection cap as an int64. Valid must have
// passed first.
func (c *Runtime) MaxConnsLimit() int64 {
	n, _ := strconv.ParseInt(c.MaxConns, 10, 64)
	return n
}

func checkPort(port string) string {
	numPort, err := strconv.Atoi(port)
	if err != nil {
		return "port should be a valid number: " + err.Error()
	}
	if numPort <= 0 {
		return "cannot be less than one"
	}
	if numPort > 65535 {
		return "cannot be greater than 65,535"
	}
	return ""
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}
