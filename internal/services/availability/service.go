package availability

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Service reports whether a player name can be taken
type Service interface {
	IsAvailable(ctx context.Context, name string) (bool, error)
}

// AlwaysAvailable accepts every name
type AlwaysAvailable struct{}

// IsAvailable always returns true
func (AlwaysAvailable) IsAvailable(ctx context.Context, name string) (bool, error) {
	return true, nil
}

// Reserved rejects names from a reserved set. Names are compared after NFC
// normalization and unicode case folding.
type Reserved struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// Ensure both implementations satisfy Service
var (
	_ Service = AlwaysAvailable{}
	_ Service = (*Reserved)(nil)
)

// NewReserved creates a Reserved service seeded with names
func NewReserved(names ...string) *Reserved {
	r := &Reserved{names: make(map[string]struct{})}
	r.Add(names...)
	return r
}

// Add reserves more names. Blank entries are ignored.
func (r *Reserved) Add(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		n = normalize(n)
		if n != "" {
			r.names[n] = struct{}{}
		}
	}
}

// LoadFromFile reserves names from a file (one name per line, # starts a comment)
func (r *Reserved) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	r.Add(names...)
	return nil
}

// Count returns the number of reserved names
func (r *Reserved) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// IsAvailable reports false for reserved names
func (r *Reserved) IsAvailable(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, taken := r.names[normalize(name)]
	return !taken, nil
}

func normalize(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}
