package models

// User owns its notes; deleting a user removes them through the notes.user_id
// foreign key.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
