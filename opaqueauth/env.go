package opaqueauth

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// MasterSecretEnvVar names the environment variable holding the
// hex-encoded OPAQUE master secret.
const MasterSecretEnvVar = "OPAQUE_MASTER_SECRET"

// LoadMasterSecretFromEnv reads the master secret from the environment,
// honoring a local .env file when present. The value must be hex-encoded
// and at least 32 bytes once decoded.
func LoadMasterSecretFromEnv() ([]byte, error) {
	// A missing .env file is fine; the variable may be set directly.
	_ = godotenv.Load()

	value := os.Getenv(MasterSecretEnvVar)
	if value == "" {
		return nil, fmt.Errorf("%s is not set", MasterSecretEnvVar)
	}

	secret, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid hex: %w", MasterSecretEnvVar, err)
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("%s must decode to at least 32 bytes, got %d", MasterSecretEnvVar, len(secret))
	}
	return secret, nil
}

// NewServerCredentialsFromEnv is the process-startup path: load the master
// secret from the environment and derive the server credentials from it.
func NewServerCredentialsFromEnv() (*ServerCredentials, error) {
	masterSecret, err := LoadMasterSecretFromEnv()
	if err != nil {
		return nil, err
	}
	return DeriveServerCredentials(masterSecret)
}
