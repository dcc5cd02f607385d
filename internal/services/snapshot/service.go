package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/models"
)

// TimestampLayout is the timestamp part of a snapshot filename
const TimestampLayout = "2006-01-02_15-04-05"

// Encoder converts a frame into the bytes written to disk
type Encoder interface {
	Encode(frame *models.Frame) ([]byte, error)
}

// Store writes alert snapshots as <camera>_<type>_<timestamp>.jpg files
type Store struct {
	mu      sync.Mutex
	dir     string
	encoder Encoder
}

func NewStore(dir string, encoder Encoder) (*Store, error) {
	if encoder == nil {
		return nil, fmt.Errorf("encoder is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir %s: %w", dir, err)
	}
	return &Store{dir: dir, encoder: encoder}, nil
}

func (s *Store) Dir() string { return s.dir }

// FileName builds the snapshot name for an alert
func FileName(cameraID string, alertType models.AlertType, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.jpg", sanitize(cameraID), alertType, at.Format(TimestampLayout))
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, id)
}

// Save encodes frame and writes it, returning the file path
func (s *Store) Save(cameraID string, alertType models.AlertType, at time.Time, frame *models.Frame) (string, error) {
	data, err := s.encoder.Encode(frame)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(s.dir, FileName(cameraID, alertType, at))

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize snapshot: %w", err)
	}

	log.Debug().
		Str("camera_id", cameraID).
		Str("alert_type", string(alertType)).
		Str("path", path).
		Int("bytes", len(data)).
		Msg("📸 Alert snapshot saved")
	return path, nil
}

type fileInfo struct {
	path    string
	modTime time.Time
	size    int64
}

func (s *Store) list() ([]fileInfo, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	files := make([]fileInfo, 0, len(matches))
	for _, m := range matches {
		if stat, err := os.Stat(m); err == nil && stat.Mode().IsRegular() {
			files = append(files, fileInfo{path: m, modTime: stat.ModTime(), size: stat.Size()})
		}
	}
	return files, nil
}

// Cleanup removes the oldest snapshots by modification time until at most
// limit remain. It returns how many files were removed.
func (s *Store) Cleanup(limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.list()
	if err != nil {
		return 0, err
	}
	if limit < 0 || len(files) <= limit {
		return 0, nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.Before(files[j].modTime)
	})

	toRemove := len(files) - limit
	removed := 0
	for _, f := range files[:toRemove] {
		if err := os.Remove(f.path); err != nil {
			log.Warn().Err(err).Str("path", f.path).Msg("Failed to remove old snapshot")
			continue
		}
		removed++
	}
	return removed, nil
}

// Stats returns the snapshot count and their total size in bytes
func (s *Store) Stats() (int, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.list()
	if err != nil {
		return 0, 0, err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	return len(files), total, nil
}
