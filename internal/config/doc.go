// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. The signing secret and
// token lifetime loaded here are immutable for the life of the process; a
// missing or short secret fails Load and must stop the server from starting.
package config
