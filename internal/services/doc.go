// Package services implements the wordbook operations on top of the vault
// store: day, set and word CRUD, the flattened legacy view, backups and
// AI enrichment.
//
// Every mutating call is a single vault.Store.Update, so it either fully
// applies and persists or leaves the stored vault exactly as it was.
package services
