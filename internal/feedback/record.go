package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/ai-tool-advisor/internal/survey"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrToolRequired  = errors.New("tool name is required")
	ErrUnknownDriver = errors.New("unknown feedback driver")
)

// Record is one piece of user feedback about a recommended tool.
type Record struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id,omitempty"`
	Tool      string           `json:"tool"`
	Rating    int              `json:"rating"`
	Comment   string           `json:"comment,omitempty"`
	Survey    survey.Responses `json:"survey,omitempty"`
	Archetype string           `json:"archetype,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Validate checks the tool name and the rating range.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Tool) == "" {
		return ErrToolRequired
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, r.Rating)
	}
	return nil
}

// Normalize fills the id and timestamp and trims free text.
func (r Record) Normalize() Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Tool = strings.TrimSpace(r.Tool)
	r.Comment = strings.TrimSpace(r.Comment)
	if r.Survey != nil {
		r.Survey = r.Survey.Clone()
	}
	return r
}

// Sink accepts feedback records. Records are never updated once appended.
type Sink interface {
	Append(ctx context.Context, r Record) error
}

// Lister returns stored records newest first. A non-positive limit returns all.
type Lister interface {
	List(ctx context.Context, limit int) ([]Record, error)
}

// Store is a Sink that can also list and must be closed.
type Store interface {
	Sink
	Lister
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Open returns the store for driver.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverFile:
		return NewFileStore(path)
	case DriverMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
