package config

import "errors"

var (
	ErrNoDatabaseDSN   = errors.New("database DSN is not configured")
	ErrNoImagesDir     = errors.New("images directory is not configured")
	ErrNoServerAddress = errors.New("server address is not configured")
)
