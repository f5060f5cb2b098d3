package feedback

import "time"

// Kind tells feedback from contact-form submissions.
type Kind string

const (
	KindFeedback Kind = "feedback"
	KindContact  Kind = "contact"
)

// Submission is a stored message from a reader.
type Submission struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message"`
	Page      string    `json:"page,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackRequest is the "how can we improve this page?" modal.
type FeedbackRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
	Page    string `json:"page" validate:"max=200"`
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// ContactRequest is the contact page form.
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Message   string `json:"message" validate:"required,max=5000"`
}

// ListFilter narrows List.
type ListFilter struct {
	Kind  Kind
	Limit int
}
