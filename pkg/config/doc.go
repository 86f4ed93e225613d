// Package config handles configuration management for tmplfs.
// It layers the embedded defaults, the optional user file, TMPLFS_*
// environment variables and explicit overrides, in that order.
package config
