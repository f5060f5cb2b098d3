package chat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/assistant"
	"github.com/ziadkadry99/nexus-docs/internal/db"
)

// Session is one chat transcript.
type Session struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists chat transcripts.
type Store struct {
	db *db.DB
}

// NewStore creates a transcript store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession starts a transcript for clientID, seeded with the welcome
// greeting.
func (s *Store) CreateSession(ctx context.Context, clientID string) (*Session, error) {
	if clientID == "" {
		clientID = "anonymous"
	}
	now := time.Now().UTC()
	sess := &Session{ID: uuid.New().String(), ClientID: clientID, CreatedAt: now, UpdatedAt: now}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, client_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.ClientID, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting chat session: %w", err)
	}
	if err := insertTurn(ctx, tx, sess.ID, 0, greeting); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing chat session: %w", err)
	}
	return sess, nil
}

// GetSession returns the session with id.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, client_id, created_at, updated_at FROM chat_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.ClientID, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("chat.GetSession", "chat session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("getting chat session: %w", err)
	}
	return &sess, nil
}

// History returns the transcript of a session, oldest turn first.
func (s *Store) History(ctx context.Context, sessionID string) ([]assistant.Turn, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM chat_messages WHERE session_id = ? ORDER BY seq ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	turns := []assistant.Turn{}
	for rows.Next() {
		var t assistant.Turn
		if err := rows.Scan(&t.Role, &t.Text); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Append adds turns to the end of a transcript.
func (s *Store) Append(ctx context.Context, sessionID string, turns ...assistant.Turn) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var last int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) FROM chat_messages WHERE session_id = ?`, sessionID,
	).Scan(&last)
	if err != nil {
		return fmt.Errorf("reading transcript length: %w", err)
	}

	for i, t := range turns {
		if err := insertTurn(ctx, tx, sessionID, last+1+i, t); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, time.Now().UTC(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("touching chat session: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("chat.Append", "chat session not found")
	}
	return tx.Commit()
}

// Reset clears a transcript back to the greeting.
func (s *Store) Reset(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, time.Now().UTC(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("touching chat session: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("chat.Reset", "chat session not found")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing chat messages: %w", err)
	}
	if err := insertTurn(ctx, tx, sessionID, 0, greeting); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteClient removes every transcript owned by clientID.
func (s *Store) DeleteClient(ctx context.Context, clientID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE session_id IN (SELECT id FROM chat_sessions WHERE client_id = ?)`, clientID,
	)
	if err != nil {
		return fmt.Errorf("deleting chat messages: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE client_id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("deleting chat sessions: %w", err)
	}
	return nil
}

var greeting = assistant.Turn{Role: assistant.RoleAssistant, Text: assistant.Welcome}

func insertTurn(ctx context.Context, tx *sql.Tx, sessionID string, seq int, t assistant.Turn) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, seq, role, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), sessionID, seq, string(t.Role), t.Text, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}
