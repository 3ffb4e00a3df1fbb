// Package auth keeps the TMDB API key in the system keyring.
package auth

import (
	"errors"

	"github.com/fluxstream/fluxstream/constant"
	"github.com/zalando/go-keyring"
)

const user = "tmdb-api-key"

// SetAPIKey stores the TMDB API key.
func SetAPIKey(key string) error {
	return keyring.Set(constant.Fluxstream, user, key)
}

// GetAPIKey returns the stored TMDB API key. A missing entry is not an error.
func GetAPIKey() (string, error) {
	key, err := keyring.Get(constant.Fluxstream, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return key, err
}

// DeleteAPIKey removes the stored TMDB API key.
func DeleteAPIKey() error {
	err := keyring.Delete(constant.Fluxstream, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
