package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session represents one learner practice session.
type Session struct {
	ID            string
	ClientInfo    string
	StartedAt     time.Time
	EndedAt       sql.NullTime
	TotalAttempts int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session into the database.
func (r *SessionRepository) Create(sess *Session) error {
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, client_info, started_at, total_attempts)
		 VALUES (?, ?, ?, ?)`,
		sess.ID, sess.ClientInfo, sess.StartedAt, sess.TotalAttempts,
	)
	return err
}

// End records the end time and final attempt count of a session.
func (r *SessionRepository) End(id string, endedAt time.Time, totalAttempts int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, total_attempts = ? WHERE id = ?`,
		endedAt, totalAttempts, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}

	err := r.db.QueryRow(
		`SELECT id, client_info, started_at, ended_at, total_attempts
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.ClientInfo, &sess.StartedAt, &sess.EndedAt, &sess.TotalAttempts)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

// List retrieves all sessions, most recent first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, client_info, started_at, ended_at, total_attempts
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		err := rows.Scan(&sess.ID, &sess.ClientInfo, &sess.StartedAt, &sess.EndedAt, &sess.TotalAttempts)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
