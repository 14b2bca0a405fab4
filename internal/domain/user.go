package domain

// AuthoritativeUser is one account row from the authoritative relational store.
// Username and Email are nil when the source holds NULL.
type AuthoritativeUser struct {
	ID       int64   `json:"id"`
	Username *string `json:"username,omitempty"` // Nullable
	Email    *string `json:"email,omitempty"`    // Nullable
}

// SecondaryUser is one account document from the secondary document store.
// ExternalID is meant to reference AuthoritativeUser.ID but nothing enforces it.
// Username and Email are nil when the document has no value; a nil field
// never collides with anything during reconciliation.
type SecondaryUser struct {
	ExternalID    int64   `json:"external_id"`
	Username      *string `json:"username,omitempty"` // Nullable
	Email         *string `json:"email,omitempty"`    // Nullable
	ActivityCount int64   `json:"activity_count"`
}

// SafeToDelete reports whether the record has no recorded activity.
func (u SecondaryUser) SafeToDelete() bool {
	return u.ActivityCount == 0
}
