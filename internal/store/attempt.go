package store

import (
	"database/sql"
	"time"
)

// Attempt represents one confirmed gesture evaluation.
type Attempt struct {
	ID         int64
	SessionID  string
	AyatIndex  int
	ChunkIndex int
	Chunk      string
	Zona       int
	Harakat    int
	Correct    bool
	IsSyaddah  bool
	CreatedAt  time.Time
}

// AttemptStats summarizes a session's evaluations.
type AttemptStats struct {
	Total   int
	Correct int
}

// AttemptRepository provides operations for attempt records.
type AttemptRepository struct {
	db *sql.DB
}

// Attempts returns the attempt repository for this store.
func (s *Store) Attempts() *AttemptRepository {
	return &AttemptRepository{db: s.db}
}

// Create inserts a new attempt record.
func (r *AttemptRepository) Create(a *Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO attempts (session_id, ayat_index, chunk_index, chunk, zona, harakat, correct, is_syaddah, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.AyatIndex, a.ChunkIndex, a.Chunk, a.Zona, a.Harakat, a.Correct, a.IsSyaddah, a.CreatedAt,
	)
	if err != nil {
		return err
	}

	a.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves all attempts of a session in order.
func (r *AttemptRepository) ListBySession(sessionID string) ([]Attempt, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, ayat_index, chunk_index, chunk, zona, harakat, correct, is_syaddah, created_at
		 FROM attempts WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		err := rows.Scan(&a.ID, &a.SessionID, &a.AyatIndex, &a.ChunkIndex, &a.Chunk,
			&a.Zona, &a.Harakat, &a.Correct, &a.IsSyaddah, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

// StatsBySession returns attempt totals for a session.
func (r *AttemptRepository) StatsBySession(sessionID string) (AttemptStats, error) {
	var stats AttemptStats
	err := r.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM attempts WHERE session_id = ?`,
		sessionID,
	).Scan(&stats.Total, &stats.Correct)
	return stats, err
}
