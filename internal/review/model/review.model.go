package model

import "corneradvisor/store"

const (
	FieldServiceID   = "serviceId"
	FieldAuthorEmail = "author.email"
)

// ReviewRef is the typed view of the review fields the API inspects.
// Everything else in a review is opaque.
type ReviewRef struct {
	ID          string
	ServiceID   string
	AuthorEmail string
}

func RefOf(doc store.Document) ReviewRef {
	return ReviewRef{
		ID:          doc.ID(),
		ServiceID:   doc.String(FieldServiceID),
		AuthorEmail: doc.String("author", "email"),
	}
}

// EmailRequest is the body of the unauthenticated email lookup.
type EmailRequest struct {
	Email string `json:"email"`
}
