package cart

import (
	"context"
	"sync"
)

// AnnotationSession buffers keystrokes for one line's customization and writes
// the final text once, when the field loses focus.
type AnnotationSession struct {
	mutator *Mutator
	lineID  string

	mu     sync.Mutex
	text   string
	closed bool
}

func (s *AnnotationSession) LineID() string {
	return s.lineID
}

// Set records the current text. No request is issued.
func (s *AnnotationSession) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.text = text
	}
}

func (s *AnnotationSession) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Commit ends the session. The text is written only if it differs from the line's
// cached customization. It reports whether a write was issued; a closed session
// never writes again.
func (s *AnnotationSession) Commit(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, nil
	}
	s.closed = true
	text := s.text
	s.mu.Unlock()

	m := s.mutator
	m.opMu.Lock()
	defer m.opMu.Unlock()

	line, err := m.lookup(s.lineID)
	if err != nil {
		return false, err
	}
	if line.Customization == text {
		return false, nil
	}
	if err := validateCustomization(text); err != nil {
		return false, err
	}

	if err := m.annotate(ctx, s.lineID, text); err != nil {
		return true, err
	}
	return true, nil
}
