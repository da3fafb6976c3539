// Package history provides the append-only inventory audit ledger.
// Every item edit records the full before/after field set; entries
// survive item force-deletion with the item reference nulled.
package history

import (
	"time"

	"billbook/internal/core/id"
)

// Entry is one audit record.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	// ItemID is nullable: force-deleting an item detaches its entries.
	ItemID *id.ID `db:"item_id" json:"itemId,omitempty"`

	// ItemName resolved by join when loading; nil for detached entries.
	ItemName *string `db:"item_name" json:"itemName,omitempty"`

	// UserID is the acting user, when the request was authenticated.
	UserID *id.ID `db:"user_id" json:"userId,omitempty"`

	// Action, e.g. "edit"
	Action string `db:"action" json:"action"`

	// OldValues / NewValues are the full audited field snapshots.
	OldValues map[string]any `db:"old_values" json:"oldValues"`
	NewValues map[string]any `db:"new_values" json:"newValues"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewEntry creates an audit record for an item change.
func NewEntry(itemID id.ID, action string, oldValues, newValues map[string]any) *Entry {
	return &Entry{
		ID:        id.New(),
		ItemID:    &itemID,
		Action:    action,
		OldValues: oldValues,
		NewValues: newValues,
		CreatedAt: time.Now().UTC(),
	}
}
