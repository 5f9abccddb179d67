// Package file provides a TOML-backed implementation of the config
// store port. Configuration lives at ~/.sitecheck/config.toml.
package file
