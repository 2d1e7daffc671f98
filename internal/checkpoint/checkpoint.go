// internal/checkpoint/checkpoint.go
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// FileName is the per-section progress file, removed on full completion.
const FileName = ".download_progress.json"

// Store persists the set of completed item identifiers for one section.
// Updates are write-temp-then-rename so an interrupt never truncates the
// file; each update is durable before the next fetch begins.
type Store struct {
	dir  string
	done map[string]struct{}
}

type progressFile struct {
	Completed []string `json:"completed"`
}

// Open loads the checkpoint for a section directory, creating an empty one
// in memory when no file exists.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir, done: make(map[string]struct{})}

	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var pf progressFile
	if err := json.Unmarshal(data, &pf); err != nil {
		// A corrupt checkpoint is treated as absent; re-downloading is
		// always safe.
		log.Warn().Str("dir", dir).Err(err).Msg("Corrupt checkpoint, starting fresh")
		return s, nil
	}

	for _, name := range pf.Completed {
		s.done[name] = struct{}{}
	}
	return s, nil
}

func (s *Store) path() string { return filepath.Join(s.dir, FileName) }

// Done reports whether the item was completed in a previous run.
func (s *Store) Done(name string) bool {
	_, ok := s.done[name]
	return ok
}

// Len returns the number of completed items.
func (s *Store) Len() int { return len(s.done) }

// MarkDone records a completed item and atomically rewrites the file.
func (s *Store) MarkDone(name string) error {
	s.done[name] = struct{}{}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create section directory: %w", err)
	}

	names := make([]string, 0, len(s.done))
	for n := range s.done {
		names = append(names, n)
	}
	sort.Strings(names)

	data, err := json.Marshal(progressFile{Completed: names})
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	// Sync before the rename so the data is on disk, not just renamed
	// page cache, when the next fetch starts.
	tmp := s.path() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync checkpoint: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace checkpoint: %w", err)
	}
	return nil
}

// Remove deletes the checkpoint file after a section completes with zero
// failures.
func (s *Store) Remove() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
