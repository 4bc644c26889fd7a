// Package config loads, normalizes, and validates solscreener configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment overrides the
// deployment surface expects (DISCORD_WEBHOOK_URL, HELIUS_API_KEY,
// WATCH_WALLETS, and friends). The Config type centralizes every knob the
// daemon and CLI need: data directory layout, cycle intervals, watch lists,
// notification sinks, and external API endpoints.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
