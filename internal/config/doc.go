// Package config loads, normalizes, and validates phonocover configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the PHONOCOVER_DICTIONARY
// environment fallback. Commands obtain selection defaults, file locations,
// and logging settings from the Config type so a single file drives every
// run.
package config
