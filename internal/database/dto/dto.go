package dto

// UserInput is the client-supplied part of a user.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NoteInput is the client-supplied part of a note.
type NoteInput struct {
	Content string `json:"content"`
}

// UserRequest is the decoded body of a user write. Pointer fields tell an
// absent or null key apart from an empty string.
type UserRequest struct {
	Name  *string `json:"name" validate:"required,max=255"`
	Email *string `json:"email" validate:"required,max=255,email"`
}

func (r UserRequest) Input() UserInput {
	return UserInput{Name: deref(r.Name), Email: deref(r.Email)}
}

// NoteRequest is the decoded body of a note write.
type NoteRequest struct {
	Content *string `json:"content" validate:"required,max=255"`
}

func (r NoteRequest) Input() NoteInput {
	return NoteInput{Content: deref(r.Content)}
}

type StatusResponse struct {
	Status string `json:"status"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
