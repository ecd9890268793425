package models

// Category represents a node in a user's category tree. Top-level
// categories have an empty ParentID.
type Category struct {
	ID        string `json:"id"`
	UserID    int64  `json:"user_id"`
	ParentID  string `json:"parent_id,omitempty"`
	Name      string `json:"name"`
	Kind      string `json:"kind"` // "income" or "expense"
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
