// Package config loads and validates podtag configuration.
//
// Configuration is TOML. Load resolves the file from an explicit path, the
// user config directory, or a project-local podtag.toml, then normalizes all
// path fields to absolute form. A sample config is embedded for `podtag
// config init`.
package config
