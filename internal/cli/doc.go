// Package cli implements the wordbook command line: a cobra command tree for
// scripted use (dump, export, import, enrich, stats, reset, version) and an
// interactive REPL for day-to-day note taking.
//
// Every command builds its configuration the same way (defaults, config
// file, environment, flags) and talks to the vault only through the
// services package.
package cli
