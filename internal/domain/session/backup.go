package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// Backup writes compressed local snapshots of a workspace model. It is a
// crash fallback, not the durable store: last write wins, no history.
type Backup struct {
	dir string
}

// NewBackup creates a backup writer rooted at dir
func NewBackup(dir string) (*Backup, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir: %w", err)
	}
	return &Backup{dir: dir}, nil
}

// Write stores a zstd-compressed JSON snapshot under the given key
func (b *Backup) Write(key string, records []types.ProjectRecord) error {
	data, err := sonic.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	compressed := enc.EncodeAll(data, nil)
	enc.Close()

	path := b.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// Read loads the snapshot stored under the given key
func (b *Backup) Read(key string) ([]types.ProjectRecord, error) {
	compressed, err := os.ReadFile(b.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var records []types.ProjectRecord
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return records, nil
}

func (b *Backup) path(key string) string {
	return filepath.Join(b.dir, key+".json.zst")
}
