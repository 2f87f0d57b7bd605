package dividends

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultLedgerFile is the ledger file name within the data directory.
const DefaultLedgerFile = "dividends.jsonl"

// DefaultBackups is the number of backups kept when the store does not say otherwise.
const DefaultBackups = 10

const backupDir = "backups"
const backupTimeFormat = "20060102T150405.000000000"

// Store loads and saves a ledger file in a data directory.
//
// Saving is atomic: the ledger is written to a temporary file that replaces
// the previous one only once complete. The previous file is first copied
// into the backups sub directory, only the most recent Backups copies are kept.
type Store struct {
	Dir     string // data directory
	File    string // ledger file name, relative to Dir
	Backups int    // number of backups to keep, 0 disables backups
}

// NewStore returns a store for dir with the default file name and backup count.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, File: DefaultLedgerFile, Backups: DefaultBackups}
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	name := s.File
	if name == "" {
		name = DefaultLedgerFile
	}
	return filepath.Join(s.Dir, name)
}

// Load reads the ledger file. A missing file is an empty ledger.
func (s *Store) Load() (*Ledger, error) {
	path := s.Path()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("ledger file %q does not exist yet, starting empty", path)
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	log.Debugf("loaded %d dividends and %d holdings from %q", ledger.Len(), len(ledger.holdings), path)
	return ledger, nil
}

// Save writes the ledger file atomically, backing up the previous content.
func (s *Store) Save(ledger *Ledger) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
	}

	if err := s.backup(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dividends-*.jsonl")
	if err != nil {
		return fmt.Errorf("error creating temporary ledger file: %w", err)
	}
	// once renamed the removal is a no-op.
	defer os.Remove(tmp.Name())

	if err := EncodeLedger(tmp, ledger); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing ledger %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing ledger %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error replacing ledger %q: %w", path, err)
	}
	log.Debugf("saved %d dividends to %q", ledger.Len(), path)
	return nil
}

// ListBackups returns the backup file paths, oldest first.
func (s *Store) ListBackups() ([]string, error) {
	pattern := filepath.Join(s.Dir, backupDir, s.backupPrefix()+"*.jsonl")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

func (s *Store) backupPrefix() string {
	return strings.TrimSuffix(filepath.Base(s.Path()), ".jsonl") + "-"
}

// backup copies the current ledger file into the backups directory and
// prunes old copies.
func (s *Store) backup(path string) error {
	if s.Backups <= 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil // nothing to backup yet
	}
	if err != nil {
		return fmt.Errorf("could not read ledger %q for backup: %w", path, err)
	}

	dir := filepath.Join(s.Dir, backupDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create backup directory %q: %w", dir, err)
	}
	name := filepath.Join(dir, s.backupPrefix()+time.Now().UTC().Format(backupTimeFormat)+".jsonl")
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("could not write backup %q: %w", name, err)
	}

	backups, err := s.ListBackups()
	if err != nil {
		return err
	}
	for len(backups) > s.Backups {
		if err := os.Remove(backups[0]); err != nil {
			log.Warnf("cannot remove old backup %q: %v", backups[0], err)
		}
		backups = backups[1:]
	}
	return nil
}
