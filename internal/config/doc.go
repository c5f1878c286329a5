// Package config loads the server settings from the environment (with
// optional dotenv files) and the per-form configuration from YAML.
package config
