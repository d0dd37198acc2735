// Package config resolves runtime settings from defaults, an optional YAML
// file, environment variables and CLI flags, in increasing precedence.
package config
