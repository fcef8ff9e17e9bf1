// Package config loads, validates, and normalizes subreel's TOML
// configuration.
//
// Load resolves the file (explicit path, ~/.config/subreel/config.toml, or a
// project-local subreel.toml), decodes it over Default(), expands every path
// field, and validates the result. Callers receive a fully-resolved Config
// and never re-apply defaults themselves.
package config
