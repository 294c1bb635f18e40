package config

import (
	"errors"
	"time"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultSweepInterval  = time.Hour
)

// validate checks that the merged configuration is complete enough to run
// the server. The database DSN is the only value without a usable default.
func (c *StructuredConfig) validate() error {
	var errs []error

	if c.Storage.DB.DSN == "" {
		errs = append(errs, ErrNoDatabaseDSN)
	}
	if c.Storage.Images.Dir == "" {
		errs = append(errs, ErrNoImagesDir)
	}
	if c.Server.HTTPAddress == "" {
		errs = append(errs, ErrNoServerAddress)
	}

	return errors.Join(errs...)
}
