package meetings

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/scribelabs/minute/internal/storage/dirstore"
)

var (
	// ErrNotFound is returned when a meeting id is unknown.
	ErrNotFound = errors.New("meeting not found")
	// ErrUnavailable wraps backend failures.
	ErrUnavailable = errors.New("meeting store unavailable")
)

// Store persists meetings as directories with meta.json plus the raw
// transcript as a companion file.
type Store struct {
	ds *dirstore.DirStore
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{ds: dirstore.New(baseDir, "meeting")}
}

// Create persists a meeting record and its transcript.
func (s *Store) Create(m *Meeting, transcript string) error {
	s.ds.Lock()
	defer s.ds.Unlock()

	if m.ID == "" {
		m.ID = GenerateMeetingID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	if err := s.ds.EnsureDir(m.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := s.ds.WriteMeta(m.ID, m); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if transcript != "" {
		if err := s.ds.WriteFileAtomic(m.ID, "transcript.txt", []byte(transcript)); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	return nil
}

// Update rewrites a meeting's metadata.
func (s *Store) Update(m *Meeting) error {
	s.ds.Lock()
	defer s.ds.Unlock()

	if err := s.ds.WriteMeta(m.ID, m); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Get reads a meeting by ID.
func (s *Store) Get(id string) (*Meeting, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	var m Meeting
	if err := s.ds.ReadMeta(id, &m); err != nil {
		if errors.Is(err, dirstore.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &m, nil
}

// Transcript reads the stored transcript text for a meeting.
func (s *Store) Transcript(id string) (string, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	data, err := s.ds.ReadFileContent(id, "transcript.txt")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if data == nil {
		return "", ErrNotFound
	}
	return string(data), nil
}

// List returns all meetings, newest first.
func (s *Store) List() ([]*Meeting, error) {
	s.ds.RLock()
	defer s.ds.RUnlock()

	dirs, err := s.ds.ListDirs()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var out []*Meeting
	for _, name := range dirs {
		var m Meeting
		if err := s.ds.ReadMeta(name, &m); err != nil {
			continue // skip corrupted records
		}
		out = append(out, &m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a meeting directory.
func (s *Store) Delete(id string) error {
	s.ds.Lock()
	defer s.ds.Unlock()

	return s.ds.RemoveDir(id)
}
