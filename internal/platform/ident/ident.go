// Package ident provides identity generation for newly created records.
// Callers depend on the Generator interface so tests can substitute a
// deterministic sequence for the UUID-backed production generator.
package ident

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces opaque string identifiers.
type Generator interface {
	NextID() string
}

// UUID generates random UUIDv4 identifiers.
type UUID struct{}

func (UUID) NextID() string {
	return uuid.NewString()
}

// Sequence generates prefixed, monotonically numbered identifiers
// (pm001, pm002, ...). Safe for concurrent use.
type Sequence struct {
	prefix string

	mu sync.Mutex
	n  int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%03d", s.prefix, s.n)
}
