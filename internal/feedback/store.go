// Package feedback stores page feedback and contact-form messages.
package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/nexus-docs/internal/db"
	"github.com/ziadkadry99/nexus-docs/internal/validate"
)

// Store persists submissions.
type Store struct {
	db *db.DB
}

// NewStore creates a feedback store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// SubmitFeedback validates and stores a feedback modal submission.
func (s *Store) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*Submission, error) {
	if err := validate.Struct("feedback.SubmitFeedback", &req); err != nil {
		return nil, err
	}
	return s.create(ctx, Submission{
		Kind:    KindFeedback,
		Message: req.Message,
		Page:    req.Page,
		Rating:  req.Rating,
	})
}

// SubmitContact validates and stores a contact form submission.
func (s *Store) SubmitContact(ctx context.Context, req ContactRequest) (*Submission, error) {
	if err := validate.Struct("feedback.SubmitContact", &req); err != nil {
		return nil, err
	}
	return s.create(ctx, Submission{
		Kind:    KindContact,
		Name:    strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:   req.Email,
		Message: req.Message,
		Page:    "contact",
	})
}

func (s *Store) create(ctx context.Context, sub Submission) (*Submission, error) {
	sub.ID = uuid.New().String()
	sub.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, kind, name, email, message, page, rating, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Kind, sub.Name, sub.Email, sub.Message, sub.Page, sub.Rating, sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting feedback: %w", err)
	}
	return &sub, nil
}

// List returns submissions, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Submission, error) {
	query := `SELECT id, kind, name, email, message, page, rating, created_at FROM feedback WHERE 1=1`
	args := []interface{}{}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	subs := []Submission{}
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.Kind, &sub.Name, &sub.Email, &sub.Message, &sub.Page, &sub.Rating, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
