package model

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator issues fresh entity ids.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc is an adapter to allow the use of ordinary functions
// as id generators.
type IDGeneratorFunc func() string

// NewID returns f().
func (f IDGeneratorFunc) NewID() string { return f() }

// RandomIDs returns the default generator: random UUIDs rendered as 32
// lowercase hex characters without separators.
func RandomIDs() IDGenerator {
	return IDGeneratorFunc(func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	})
}

// SequenceIDs returns a deterministic generator yielding prefix1, prefix2, ...
// It is safe for concurrent use.
func SequenceIDs(prefix string) IDGenerator {
	var (
		mu sync.Mutex
		n  int
	)
	return IDGeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + strconv.Itoa(n)
	})
}
