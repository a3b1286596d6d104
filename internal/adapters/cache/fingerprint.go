package cache

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/podium/internal/domain/model"
)

// Fingerprint identifies the content of one result-set snapshot. The
// competition count is carried alongside the hash so a trivially different
// dataset can never collide into a stale entry.
type Fingerprint struct {
	Competitions int
	Hash         uint64
}

// String renders the fingerprint as the singleflight/cache key.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%d:%016x", f.Competitions, f.Hash)
}

// FingerprintOf hashes the snapshot content: roster ids and names plus every
// competition's identity and score map in deterministic order. Any edit to
// the result set yields a different fingerprint.
func FingerprintOf(snap model.Snapshot) Fingerprint {
	d := xxhash.New()

	for _, p := range snap.Participants {
		writeField(d, string(p.ID))
		writeField(d, p.DisplayName)
		writeField(d, string(p.Status))
	}

	for _, c := range snap.Competitions {
		writeField(d, c.ID)
		writeField(d, strconv.Itoa(c.Year))
		writeField(d, c.Name)
		writeField(d, c.Location)
		writeField(d, string(c.Arranger3rd))
		writeField(d, string(c.ArrangerSecondLast))

		ids := make([]string, 0, len(c.Scores))
		for id := range c.Scores {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		for _, id := range ids {
			writeField(d, id)
			writeField(d, strconv.Itoa(int(c.Scores[model.ParticipantID(id)])))
		}
	}

	return Fingerprint{Competitions: len(snap.Competitions), Hash: d.Sum64()}
}

// writeField separates values with a NUL so adjacent fields cannot alias
// ("ab"+"c" vs "a"+"bc").
func writeField(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0})
}
