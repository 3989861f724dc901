package config

import "time"

const (
	defaultScheme  = "https"
	defaultPort    = 443
	defaultVsys    = "vsys1"
	defaultTimeout = 30 * time.Second

	defaultPollInterval = 500 * time.Millisecond
)
