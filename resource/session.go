package resource

import (
	"os"
	"path/filepath"
	"sync"
)

type Status int

const (
	StatusWritten Status = iota
	StatusUnchanged
	// StatusSkipped means the resource was already extracted earlier in the same session.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Session extracts every (resource, destination) pair at most once while the destination exists.
type Session struct {
	extractor *Extractor

	mu        sync.Mutex
	extracted map[string]struct{}
}

func NewSession(extractor *Extractor) *Session {
	return &Session{
		extractor: extractor,
		extracted: make(map[string]struct{}),
	}
}

func (s *Session) Extract(dst string, ref Ref) (Status, error) {
	key := sessionKey(dst, ref)

	s.mu.Lock()
	_, done := s.extracted[key]
	s.mu.Unlock()
	if done {
		if _, err := os.Stat(dst); err == nil {
			return StatusSkipped, nil
		}
	}

	written, err := s.extractor.ExtractIfChanged(dst, ref)
	if err != nil {
		s.Forget(dst, ref)
		return 0, err
	}

	s.mu.Lock()
	s.extracted[key] = struct{}{}
	s.mu.Unlock()

	if !written {
		return StatusUnchanged, nil
	}
	return StatusWritten, nil
}

func (s *Session) Forget(dst string, ref Ref) {
	s.mu.Lock()
	delete(s.extracted, sessionKey(dst, ref))
	s.mu.Unlock()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.extracted)
}

func sessionKey(dst string, ref Ref) string {
	return ref.String() + "\x00" + filepath.Clean(dst)
}
