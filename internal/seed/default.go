package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/cocoon/internal/hierarchy"
)

//go:embed default.yaml
var defaultSeed []byte

// Default returns the embedded demo org chart.
func Default(now time.Time) (hierarchy.Snapshot, error) {
	return FromBytes(defaultSeed, now)
}

// FromBytes parses, validates and converts a seed document.
func FromBytes(data []byte, now time.Time) (hierarchy.Snapshot, error) {
	f, err := Parse(data)
	if err != nil {
		return hierarchy.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if errs := Validate(f); len(errs) > 0 {
		return hierarchy.Snapshot{}, &ValidationError{Errs: errs}
	}
	return Convert(f, now), nil
}

// FromFile is FromBytes over the contents of path.
func FromFile(path string, now time.Time) (hierarchy.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hierarchy.Snapshot{}, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return FromBytes(data, now)
}
