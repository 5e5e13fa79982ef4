// Package config loads, normalizes, and validates rangepresets configuration.
//
// Settings come from an optional TOML file layered over Default(). The PORT
// environment variable, when set, overrides the bind port so container
// deployments can keep using it. The [presets] section carries the user
// preferences the host applies when it creates scenes and derives presets
// from markers.
package config
