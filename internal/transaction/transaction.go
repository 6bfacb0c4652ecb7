package transaction

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/usl-labs/usl/internal/manifest"
	"github.com/usl-labs/usl/internal/platform"
)

// ErrTxDone is returned by Commit on a transaction that was already
// committed or rolled back.
var ErrTxDone = errors.New("transaction has already been committed or rolled back")

type state int

const (
	stateOpen state = iota
	stateCommitted
	stateRolledBack
)

// fileRecord is one destination file written during the transaction.
// backup is empty when dest did not exist beforehand.
type fileRecord struct {
	dest   string
	backup string
}

// Transaction is the compensating-action log of one install.
type Transaction struct {
	fs  afero.Fs
	log zerolog.Logger

	manifestPath    string
	manifestBackup  string // empty when the manifest did not exist at Begin
	manifestExisted bool

	files   []fileRecord
	tracked map[string]bool
	dirs    []string
	state   state
}

// Begin opens a transaction. If the manifest exists it is first copied to a
// new sibling file ending in manifest.BackupSuffix.
func Begin(fsys afero.Fs, manifestPath string, log zerolog.Logger) (*Transaction, error) {
	tx := &Transaction{
		fs:           fsys,
		log:          log,
		manifestPath: manifestPath,
		tracked:      make(map[string]bool),
	}

	exists, err := afero.Exists(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("checking manifest: %w", err)
	}
	if exists {
		backup, err := platform.BackupFile(fsys, manifestPath, manifest.BackupSuffix)
		if err != nil {
			return nil, fmt.Errorf("backing up manifest: %w", err)
		}
		tx.manifestBackup = backup
		tx.manifestExisted = true
		log.Debug().Str("path", backup).Msg("manifest backed up")
	}

	return tx, nil
}

// TrackFileWrite records that dest is about to be written. backup is where
// the previous content of dest was moved, or empty if dest did not exist.
// Only the first record for a destination is kept, so rollback restores the
// content dest had before the transaction.
func (tx *Transaction) TrackFileWrite(dest, backup string) {
	if tx.tracked[dest] {
		return
	}
	tx.tracked[dest] = true
	tx.files = append(tx.files, fileRecord{dest: dest, backup: backup})
}

// Tracks reports whether dest has already been recorded in this transaction.
func (tx *Transaction) Tracks(dest string) bool {
	return tx.tracked[dest]
}

// TrackDirCreated records a directory created by the transaction.
func (tx *Transaction) TrackDirCreated(dir string) {
	if slices.Contains(tx.dirs, dir) {
		return
	}
	tx.dirs = append(tx.dirs, dir)
}

// Commit makes the transaction's changes permanent by discarding every
// backup. Failing to delete a backup is logged, not returned.
func (tx *Transaction) Commit() error {
	if tx.state != stateOpen {
		return ErrTxDone
	}

	if tx.manifestBackup != "" {
		tx.removeQuietly(tx.manifestBackup, "manifest backup")
	}
	for _, rec := range tx.files {
		if rec.backup != "" {
			tx.removeQuietly(rec.backup, "file backup")
		}
	}

	tx.files = nil
	tx.dirs = nil
	tx.tracked = make(map[string]bool)
	tx.state = stateCommitted
	return nil
}

// Rollback undoes everything recorded so far: the manifest is restored
// first, then files in reverse order, then created directories in reverse
// order if they are empty. A step that fails is logged and the remaining
// steps still run. Rollback does nothing after Commit or a previous
// Rollback.
func (tx *Transaction) Rollback() {
	if tx.state != stateOpen {
		return
	}
	tx.state = stateRolledBack
	tx.log.Warn().Msg("rolling back installation")

	tx.restoreManifest()

	for i := len(tx.files) - 1; i >= 0; i-- {
		tx.restoreFile(tx.files[i])
	}

	for i := len(tx.dirs) - 1; i >= 0; i-- {
		tx.removeDirIfEmpty(tx.dirs[i])
	}

	tx.files = nil
	tx.dirs = nil
}

func (tx *Transaction) restoreManifest() {
	switch {
	case tx.manifestBackup != "":
		exists, _ := afero.Exists(tx.fs, tx.manifestBackup)
		if !exists {
			tx.log.Warn().Str("path", tx.manifestBackup).Msg("manifest backup missing, cannot restore manifest")
			return
		}
		if err := tx.fs.Remove(tx.manifestPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			tx.log.Warn().Err(err).Str("path", tx.manifestPath).Msg("removing modified manifest")
		}
		if err := tx.fs.Rename(tx.manifestBackup, tx.manifestPath); err != nil {
			tx.log.Warn().Err(err).Str("path", tx.manifestPath).Msg("restoring manifest")
			return
		}
		tx.log.Debug().Str("path", tx.manifestPath).Msg("manifest restored")

	case !tx.manifestExisted:
		if err := tx.fs.Remove(tx.manifestPath); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				tx.log.Warn().Err(err).Str("path", tx.manifestPath).Msg("removing created manifest")
			}
			return
		}
		tx.log.Debug().Str("path", tx.manifestPath).Msg("created manifest removed")
	}
}

func (tx *Transaction) restoreFile(rec fileRecord) {
	if rec.backup != "" {
		if err := tx.fs.Rename(rec.backup, rec.dest); err != nil {
			tx.log.Warn().Err(err).Str("path", rec.dest).Msg("restoring file from backup")
			return
		}
		tx.log.Debug().Str("path", rec.dest).Msg("file restored")
		return
	}

	if err := tx.fs.Remove(rec.dest); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			tx.log.Warn().Err(err).Str("path", rec.dest).Msg("removing copied file")
		}
		return
	}
	tx.log.Debug().Str("path", rec.dest).Msg("file removed")
}

func (tx *Transaction) removeDirIfEmpty(dir string) {
	if ok, _ := afero.DirExists(tx.fs, dir); !ok {
		return
	}
	empty, err := afero.IsEmpty(tx.fs, dir)
	if err != nil {
		tx.log.Warn().Err(err).Str("path", dir).Msg("checking created directory")
		return
	}
	if !empty {
		tx.log.Debug().Str("path", dir).Msg("created directory not empty, keeping it")
		return
	}
	if err := tx.fs.Remove(dir); err != nil {
		tx.log.Warn().Err(err).Str("path", dir).Msg("removing created directory")
		return
	}
	tx.log.Debug().Str("path", dir).Msg("directory removed")
}

func (tx *Transaction) removeQuietly(path, what string) {
	if err := tx.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		tx.log.Warn().Err(err).Str("path", path).Msgf("removing %s", what)
	}
}
