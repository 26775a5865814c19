package playersport

import "context"

// Repository persists per-user sport entries.
type Repository interface {
	// ListByUser returns entries ordered primary first, then by creation time.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	// Replace swaps the user's full list atomically.
	Replace(ctx context.Context, userID string, entries []Entry) error
	// Add inserts entry after clearing the primary flag on demoteIDs, in one transaction.
	Add(ctx context.Context, entry Entry, demoteIDs []string) error
	// Update rewrites skill level and primary flag of entry, clearing the primary flag on demoteIDs first.
	Update(ctx context.Context, entry Entry, demoteIDs []string) error
	// Delete removes the entry and, when promoteID is not empty, makes that
	// entry primary in the same transaction. It reports false when the entry
	// does not exist; a missing promoteID entry fails the whole call.
	Delete(ctx context.Context, userID, entryID, promoteID string) (bool, error)
}
