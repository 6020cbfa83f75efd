// Package config loads and validates the engine configuration from three
// layered sources: environment variables, command-line flags, and an
// optional JSON file. Layers are folded together with mergo; earlier
// layers take precedence. The merged result is validated before use.
package config
