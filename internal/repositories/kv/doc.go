// Package kv provides the persistence slot used by the vault: a tiny
// key/value table in the local SQLite database.
//
// The vault document lives under a single fixed key; the repository itself
// knows nothing about its shape and stores opaque bytes. Read-modify-write
// cycles go through Update, which wraps the read and the write in one
// transaction (see dbx.WithTx) so a failed mutation leaves the slot as it
// was.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "KD_VAULT_V2", raw)
//	raw, _ = repo.Get(ctx, "KD_VAULT_V2")
//	_ = repo.Update(ctx, "KD_VAULT_V2", func(old []byte) ([]byte, error) { ... })
package kv
