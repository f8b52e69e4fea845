// Package session issues and resumes conversation session identifiers.
// Identifiers live only for the process; nothing here touches disk.
package session

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh session id of the form cli_<UTC timestamp>_<8 hex>.
// The random suffix keeps two ids distinct even within the same second.
// It never fails.
func New() string {
	id := uuid.New()
	suffix := binary.BigEndian.Uint32(id[:4])
	return fmt.Sprintf("cli_%s_%08x", time.Now().UTC().Format("20060102_150405"), suffix)
}

// Lookup finds the most recent session id for a user. An empty id with a nil
// error means no session exists.
type Lookup interface {
	LatestSession(ctx context.Context, user string) (string, error)
}

// ContinueOrNew resumes user's latest session when one can be found, and
// starts a new one otherwise. A lookup failure degrades to a fresh session
// rather than propagating; continuity is best-effort.
func ContinueOrNew(ctx context.Context, lookup Lookup, user string) (id string, continued bool) {
	prev, err := lookup.LatestSession(ctx, user)
	if err != nil || prev == "" {
		return New(), false
	}
	return prev, true
}
