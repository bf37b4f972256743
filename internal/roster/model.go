package roster

import "time"

// Mark records a user's relationship with one operator. An operator with
// no mark is simply not part of the roster.
type Mark struct {
	UserID     string    `json:"-"`
	OperatorID string    `json:"operatorId"`
	Owned      bool      `json:"owned"`
	Raised     bool      `json:"raised"`
	WantToUse  bool      `json:"wantToUse"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MarkUpdate carries a partial change. Nil fields are left untouched.
type MarkUpdate struct {
	Owned     *bool `json:"owned"`
	Raised    *bool `json:"raised"`
	WantToUse *bool `json:"wantToUse"`
}

// ChangeEntry is one line of the roster changelog, appended whenever a
// flag flips.
type ChangeEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	OperatorID string    `json:"operatorId"`
	Field      string    `json:"field"`
	Value      bool      `json:"value"`
	ChangedAt  time.Time `json:"changedAt"`
}

const (
	FieldOwned     = "owned"
	FieldRaised    = "raised"
	FieldWantToUse = "wantToUse"
)
