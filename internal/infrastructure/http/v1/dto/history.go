package dto

import (
	"time"

	"billbook/internal/domain/history"
)

// HistoryEntryResponse is one inventory audit record.
type HistoryEntryResponse struct {
	ID        string         `json:"id"`
	ItemID    *string        `json:"itemId,omitempty"`
	ItemName  *string        `json:"itemName,omitempty"`
	UserID    *string        `json:"userId,omitempty"`
	Action    string         `json:"action"`
	OldValues map[string]any `json:"oldValues"`
	NewValues map[string]any `json:"newValues"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FromHistoryEntry creates response DTO from an audit record.
func FromHistoryEntry(e *history.Entry) *HistoryEntryResponse {
	resp := &HistoryEntryResponse{
		ID:        e.ID.String(),
		ItemName:  e.ItemName,
		Action:    e.Action,
		OldValues: e.OldValues,
		NewValues: e.NewValues,
		CreatedAt: e.CreatedAt,
	}

	if e.ItemID != nil {
		s := e.ItemID.String()
		resp.ItemID = &s
	}
	if e.UserID != nil {
		s := e.UserID.String()
		resp.UserID = &s
	}

	return resp
}

// ResetHistoryResponse reports how many records an administrative reset removed.
type ResetHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}
