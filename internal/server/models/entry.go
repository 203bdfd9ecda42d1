package models

import "time"

// VaultEntry is a vault row as stored: every content field is ciphertext and
// optional fields are nil when absent.
type VaultEntry struct {
	ID        int64
	OwnerID   string
	Title     []byte
	URL       []byte
	Username  []byte
	Password  []byte
	CreatedAt time.Time
}

// Entry is the decrypted view of a vault entry.
type Entry struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	URL      *string `json:"url"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Summary is the list/search view of an entry; the password is withheld.
type Summary struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	URL      *string `json:"url"`
	Username *string `json:"username"`
}

// NewEntry carries the plaintext fields of an entry to be created.
type NewEntry struct {
	Title    string
	URL      *string
	Username *string
	Password *string
}

// FieldChange says what an update does with one field: leave it alone,
// replace it, or clear it.
type FieldChange struct {
	Set   bool
	Value *string
}

// Keep leaves the field untouched.
func Keep() FieldChange { return FieldChange{} }

// SetTo replaces the field with v.
func SetTo(v string) FieldChange { return FieldChange{Set: true, Value: &v} }

// Clear removes the field.
func Clear() FieldChange { return FieldChange{Set: true} }

// EntryUpdate is a partial update; zero-valued changes keep prior ciphertext.
type EntryUpdate struct {
	Title    FieldChange
	URL      FieldChange
	Username FieldChange
	Password FieldChange
}

// Empty reports whether the update touches no field.
func (u EntryUpdate) Empty() bool {
	return !u.Title.Set && !u.URL.Set && !u.Username.Set && !u.Password.Set
}

// Sort orders accepted by vault listing.
const (
	SortTitle             = "title"
	SortTitleReversed     = "title_reversed"
	SortDateAdded         = "date_added"
	SortDateAddedReversed = "date_added_reversed"
)
