// Package repository defines the result-set store interface and errors.
package repository

import (
	"context"

	"github.com/okian/podium/internal/domain/model"
)

// Store provides read/write access to the normalized result set. Writers
// own ingestion; readers only ever see complete, versioned snapshots.
type Store interface {
	// UpsertParticipant adds or replaces a roster member.
	UpsertParticipant(ctx context.Context, p model.Participant) error

	// AddCompetition inserts a new competition. Every participant id in the
	// score map must already be on the roster. Returns
	// ErrDuplicateCompetition when the id is already present.
	AddCompetition(ctx context.Context, c model.Competition) error

	// UpdateCompetition replaces an existing competition. Returns
	// ErrNotFound when the id is unknown.
	UpdateCompetition(ctx context.Context, c model.Competition) error

	// Snapshot returns an immutable copy of the full result set:
	// participants ascending by id, competitions ascending by (year, id).
	Snapshot(ctx context.Context) model.Snapshot

	// Version returns a counter that increments on every mutation.
	Version(ctx context.Context) uint64

	// Counts returns the roster and competition sizes.
	Counts(ctx context.Context) (participants, competitions int)
}
