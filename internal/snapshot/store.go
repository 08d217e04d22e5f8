package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"storesnap/internal/config"
	"storesnap/internal/logger"
	"storesnap/internal/models"
)

// Store persists snapshots as UTF-8 JSON documents. The document is the
// system's sole durable interface: its absence is the failure signal the
// downstream reader observes.
type Store struct {
	output config.OutputConfig
	log    *logger.Logger
}

// NewStore creates a snapshot store.
func NewStore(output config.OutputConfig, log *logger.Logger) *Store {
	return &Store{
		output: output,
		log:    log,
	}
}

// Save validates the snapshot and writes it to the configured path,
// optionally backing up a previous snapshot first. Non-ASCII text is
// written as-is, without escaping.
func (st *Store) Save(snap *models.Snapshot) error {
	if err := Validate(snap); err != nil {
		return fmt.Errorf("snapshot failed validation: %w", err)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if st.output.PrettyPrint {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(st.output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if st.output.CreateBackup {
		st.backupExisting()
	}

	if err := os.WriteFile(st.output.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	st.log.Info("snapshot saved",
		"path", st.output.Path,
		"products", len(snap.Products),
		"reviews", len(snap.Reviews),
		"testimonials", len(snap.Testimonials),
	)

	return nil
}

// backupExisting moves a previous snapshot aside. Best effort: a failed
// backup is logged, not fatal, since the new snapshot still supersedes it.
func (st *Store) backupExisting() {
	if _, err := os.Stat(st.output.Path); err != nil {
		return
	}

	backupPath := st.output.Path + ".bak"
	if err := os.Rename(st.output.Path, backupPath); err != nil {
		st.log.Warn("failed to back up previous snapshot", "error", err)

		return
	}

	st.log.Debug("previous snapshot backed up", "path", backupPath)
}
