// SPDX-License-Identifier: EPL-2.0

// Package config loads the translator settings from YAML with SWARANTARA_*
// environment overrides. A sample lives in config.example.yaml at the
// repository root.
package config
