package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Registration status values for a user record
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusConfirmed = "confirmed"
)

// Registration source values. SourceExternal is stamped by the batch import
// endpoint; the others appear on directly-created and form-synced records.
const (
	SourceDirect     = "direct"
	SourceGoogleForm = "google_form"
	SourceAirtable   = "airtable"
	SourceExternal   = "external"
)

// User represents a hackathon registrant stored in the users collection
type User struct {
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Age                 int       `json:"age"`
	School              string    `json:"school,omitempty"`
	Major               string    `json:"major,omitempty"`
	GraduationYear      int       `json:"graduation_year,omitempty"`
	GitHub              string    `json:"github,omitempty"`
	LinkedIn            string    `json:"linkedin,omitempty"`
	Skills              []string  `json:"skills"`
	DietaryRestrictions string    `json:"dietary_restrictions,omitempty"`
	ShirtSize           string    `json:"shirt_size,omitempty"`
	TeamID              string    `json:"team_id,omitempty"`
	RegistrationStatus  string    `json:"registration_status"`
	RegistrationSource  string    `json:"registration_source"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the four registration statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusConfirmed:
		return true
	}
	return false
}

// DeriveID returns the document ID for an email address: the local part
// before the first '@'. An email without '@' maps to itself and an empty
// email maps to an empty ID. Distinct emails sharing a local part
// ("a@foo.com", "a@bar.com") collide; the last write wins.
func DeriveID(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// ApplyDefaults fills zero-valued fields the way a freshly registered user
// record should look
func (u *User) ApplyDefaults() {
	now := time.Now().UTC()
	if u.RegistrationStatus == "" {
		u.RegistrationStatus = StatusPending
	}
	if u.RegistrationSource == "" {
		u.RegistrationSource = SourceDirect
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
}

// Document converts the user to the map form stored in the document store.
// Timestamps become RFC 3339 strings so every stored field is JSON-typed.
func (u *User) Document() map[string]any {
	return toDocument(u)
}

// UserFromDocument rebuilds a user record from its stored map form
func UserFromDocument(doc map[string]any) (*User, error) {
	var u User
	if err := fromDocument(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func toDocument(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

func fromDocument(doc map[string]any, out any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
