// Package config loads wordbook settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults (LoadDefaults)
//  2. an optional config file, JSON (.json) or YAML (.yaml, .yml)
//  3. environment variables (WORDBOOK_*, GEMINI_API_KEY)
//  4. command-line flags (Flags.Apply)
package config
