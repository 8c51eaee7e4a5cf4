package service

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/zoraaver/wlogger/internal/domain"
)

// generateULID creates a new ULID string
func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// assignIDs gives every workout and planned exercise without an id a new
// ULID. Existing ids are kept so logs keep pointing at their workouts.
func assignIDs(weeks []domain.Week) {
	for i := range weeks {
		for j := range weeks[i].Workouts {
			w := &weeks[i].Workouts[j]
			if w.ID == "" {
				w.ID = generateULID()
			}
			for k := range w.Exercises {
				if w.Exercises[k].ID == "" {
					w.Exercises[k].ID = generateULID()
				}
			}
		}
	}
}
