// Package store persists completed annealing runs to MongoDB for later
// inspection (§3 Run, §4.11, C14): best cost, final placement, and the
// parameter snapshot that produced them.
//
// Grounded on the teacher's pkg/session.Store interface shape (Get/Set by
// ID, context-scoped); this completes the teacher's declared-but-unwired
// go.mongodb.org/mongo-driver dependency instead of leaving it referenced
// only in doc comments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/module"
)

// Placement is one module's final position in a persisted Run.
type Placement struct {
	Name   string `bson:"name"`
	X, Y   int    `bson:"x,y"`
	Width  int    `bson:"width"`
	Height int    `bson:"height"`
}

// Run is a completed annealing run (§3).
type Run struct {
	ID          string        `bson:"_id"`
	InputDigest string        `bson:"input_digest"`
	Config      config.Config `bson:"config"`
	BestCost    float64       `bson:"best_cost"`
	BestArea    int           `bson:"best_area"`
	Duration    time.Duration `bson:"duration"`
	TimedOut    bool          `bson:"timed_out"`
	Placements  []Placement   `bson:"placements"`
	CreatedAt   time.Time     `bson:"created_at"`
}

// NewRun assembles a Run record from a finished module set, assigning it
// a fresh UUID (§2 C16 "each job gets a UUID", reused here for runs).
func NewRun(inputDigest string, cfg config.Config, bestCost float64, bestArea int, duration time.Duration, timedOut bool, mods *module.Set) Run {
	placements := make([]Placement, 0, mods.Len())
	for _, m := range mods.All() {
		placements = append(placements, Placement{
			Name: m.Name, X: m.X, Y: m.Y,
			Width: m.EffectiveWidth(), Height: m.EffectiveHeight(),
		})
	}
	return Run{
		ID:          uuid.NewString(),
		InputDigest: inputDigest,
		Config:      cfg,
		BestCost:    bestCost,
		BestArea:    bestArea,
		Duration:    duration,
		TimedOut:    timedOut,
		Placements:  placements,
		CreatedAt:   time.Now(),
	}
}

// Store is the interface for run-history backends.
type Store interface {
	// Save persists a completed run.
	Save(ctx context.Context, run Run) error

	// Get retrieves a run by ID. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs, newest first, up to limit.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases any underlying connection.
	Close(ctx context.Context) error
}
