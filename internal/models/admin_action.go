package models

import "time"

type AdminActionKind string

const (
	ActionTogglePortal AdminActionKind = "TOGGLE_PORTAL"
	ActionPickNext     AdminActionKind = "PICK_NEXT"
	ActionAccept       AdminActionKind = "ACCEPT"
	ActionDeny         AdminActionKind = "DENY"
	ActionNewSession   AdminActionKind = "NEW_SESSION"
)

// AdminAction is an append-only audit record. The service only ever writes
// these; nothing reads them back.
type AdminAction struct {
	ID        int64           `json:"id"`
	Action    AdminActionKind `json:"action"`
	Payload   map[string]any  `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
