package api

import "time"

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type StatusResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Entry is a decrypted vault entry. Absent optional fields are null.
type Entry struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	URL      *string `json:"url"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Summary is an Entry without its password.
type Summary struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	URL      *string `json:"url"`
	Username *string `json:"username"`
}

type ListRequest struct {
	SortBy string `json:"sort_by,omitempty"`
}

type ListResponse struct {
	Entries []Summary `json:"entries"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type AddRequest struct {
	Title    string  `json:"title"`
	URL      *string `json:"url,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

type EntryRequest struct {
	ID int64 `json:"id"`
}

type EntryResponse struct {
	Entry Entry `json:"entry"`
}

// UpdateRequest changes only the fields it carries; null clears one.
type UpdateRequest struct {
	ID       int64          `json:"id"`
	Title    NullableString `json:"title,omitzero"`
	URL      NullableString `json:"url,omitzero"`
	Username NullableString `json:"username,omitzero"`
	Password NullableString `json:"password,omitzero"`
}

type CheckPasswordRequest struct {
	Password string `json:"password"`
}

type AdviceResponse struct {
	Place   int64  `json:"place"`
	Message string `json:"message"`
}
