// Package backup exports the vault to a JSON file, optionally sealed with
// a passphrase, and reads such files back. Files can be kept in a local
// directory or in an S3 bucket.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/cryptox"
	"github.com/dmitrijs2005/wordbook/internal/models"
	"github.com/dmitrijs2005/wordbook/internal/vault"
)

// SealedFormat tags passphrase-protected backups.
const SealedFormat = "wordbook-sealed-v1"

const filePrefix = "kelime-defterim-backup-"

type sealedEnvelope struct {
	Format     string `json:"format"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Encode renders v as an indented JSON backup. With a non-empty passphrase
// the document is sealed and wrapped in an envelope instead.
func Encode(v *models.Vault, passphrase string) ([]byte, error) {
	compact, err := vault.Encode(v)
	if err != nil {
		return nil, err
	}

	if passphrase == "" {
		return indent(compact)
	}

	salt := cryptox.NewSalt()
	key := cryptox.DeriveKey([]byte(passphrase), salt)
	defer common.WipeByteArray(key)

	ct, nonce, err := cryptox.Seal(compact, key)
	if err != nil {
		return nil, fmt.Errorf("failed to seal backup: %w", err)
	}

	out, err := json.MarshalIndent(sealedEnvelope{
		Format:     SealedFormat,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ct,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Decode reads a backup produced by Encode (or a plain vault document).
// Anything that is not a version 2 vault with a days array, and any sealed
// backup that cannot be opened with passphrase, fails with
// common.ErrInvalidBackup.
func Decode(data []byte, passphrase string) (*models.Vault, error) {
	var head struct {
		Format string `json:"format"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}

	if head.Format == SealedFormat {
		plain, err := open(data, passphrase)
		if err != nil {
			return nil, err
		}
		data = plain
	}

	v, err := vault.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}
	return v, nil
}

// Sealed reports whether data looks like a passphrase-protected backup.
func Sealed(data []byte) bool {
	var head struct {
		Format string `json:"format"`
	}
	return json.Unmarshal(data, &head) == nil && head.Format == SealedFormat
}

// FileName returns the download name used for a backup taken at now,
// e.g. "kelime-defterim-backup-2024-01-01-week-1.json".
func FileName(now time.Time, label string) string {
	name := filePrefix + models.DayIDFor(now)
	if slug := models.Slugify(label); slug != "" {
		name += "-" + slug
	}
	return name + ".json"
}

var errPassphraseRequired = errors.New("backup is sealed, a passphrase is required")

func open(data []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBackup, errPassphraseRequired)
	}

	var env sealedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}

	key := cryptox.DeriveKey([]byte(passphrase), env.Salt)
	defer common.WipeByteArray(key)

	plain, err := cryptox.Open(env.Ciphertext, env.Nonce, key)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong passphrase or damaged file", common.ErrInvalidBackup)
	}
	return plain, nil
}

func indent(compact []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
