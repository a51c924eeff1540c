package utils

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"github.com/powder-labs/srsprofile/errors"
)

// FileExists reports whether filename exists and is a regular file.
func FileExists(filename string) bool {
	f, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !f.IsDir()
}

// ExpandPath expands a leading ~ in p to the user's home directory.
func ExpandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", p, err)
	}
	return expanded, nil
}

// ReadFileWithEnv reads a file and substitutes `$VAR` and `${VAR}`
// references with values from the environment. Unset variables expand to
// an empty string, so credentials can be left out of the file itself.
func ReadFileWithEnv(path string) ([]byte, error) {
	if !FileExists(path) {
		return nil, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	b, err = envsubst.Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("failed to expand env vars in %s: %w", path, err)
	}

	return b, nil
}

// LoadEnvFile loads environment variables from the given dotenv file,
// without overriding variables already set in the process environment.
// A missing file is not an error when optional is true.
func LoadEnvFile(path string, optional bool) error {
	if !FileExists(path) {
		if optional {
			log.Debugf("env file %s not found, skipping", path)
			return nil
		}
		return fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}
