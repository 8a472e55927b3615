package vm

import (
	"os"
	"strconv"
)

// Model configuration flags - can be set via environment variables
var (
	// DefaultMaxChainDepth bounds every prototype chain walk. A chain longer
	// than this is treated as cyclic.
	DefaultMaxChainDepth = getEnvInt("PROTOCHAIN_MAX_CHAIN_DEPTH", 64)

	// TraceChainWalks logs every step of a chain walk at debug level
	TraceChainWalks = getEnvBool("PROTOCHAIN_TRACE_CHAIN", false)
)

// getEnvBool reads a boolean environment variable with a default value
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvInt reads an integer environment variable with a default value
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
