package domain

import "time"

// SessionEventKind names what happened to a browser context's session.
type SessionEventKind string

const (
	EventLoginSucceeded SessionEventKind = "login_succeeded"
	EventLoginFailed    SessionEventKind = "login_failed"
	EventLogout         SessionEventKind = "logout"
	EventRestoreCorrupt SessionEventKind = "restore_corrupt"
)

// SessionEvent is an audit record of a session transition.
type SessionEvent struct {
	ContextID string           `json:"context_id" bson:"context_id"`
	Kind      SessionEventKind `json:"kind" bson:"kind"`
	Email     string           `json:"email,omitempty" bson:"email,omitempty"`
	Role      Role             `json:"role,omitempty" bson:"role,omitempty"`
	Reason    string           `json:"reason,omitempty" bson:"reason,omitempty"`
	At        time.Time        `json:"at" bson:"at"`
}
