// Package config loads drawables configuration with koanf: embedded
// defaults, a project file, then DRAWABLES_ environment variables.
// Command line flags are applied on top by the cmd package.
package config
