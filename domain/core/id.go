package core

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// shortIDLength is the number of uuid characters kept for run-scoped identifiers.
const shortIDLength = 8

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// Domain-specific ID types
type (
	HypothesisID ID
	RunID        ID
	VariantID    ID
)

// String conversions for domain IDs
func (id HypothesisID) String() string { return ID(id).String() }
func (id RunID) String() string        { return ID(id).String() }
func (id VariantID) String() string    { return ID(id).String() }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// IDGenerator hands out short identifiers for hypotheses and creative variants.
// Components receive one explicitly so runs stay reproducible under a fixed seed.
type IDGenerator interface {
	NextID() ID
}

// SeededIDGenerator derives uuids from a seeded math/rand stream. Two generators
// built with the same seed yield the same sequence.
type SeededIDGenerator struct {
	mu  sync.Mutex
	src io.Reader
}

// NewSeededIDGenerator creates a deterministic generator for the given seed.
func NewSeededIDGenerator(seed int64) *SeededIDGenerator {
	return &SeededIDGenerator{src: rand.New(rand.NewSource(seed))}
}

// NextID returns the next 8-character identifier in the seeded sequence.
func (g *SeededIDGenerator) NextID() ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// math/rand readers never fail; keep the run going regardless
		id = uuid.New()
	}
	return ID(id.String()[:shortIDLength])
}
