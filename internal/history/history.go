package history

import (
	"context"
	"strings"
	"time"

	"vita/internal/db"
)

// Store persists chat turns so past sessions can be reviewed with /history.
type Store struct {
	db *db.DB
}

// Turn is one completed query/answer exchange.
type Turn struct {
	ID        int64
	CreatedAt time.Time
	Query     string
	Tools     []string
	Backend   string
	Answer    string
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

func (s *Store) SaveTurn(ctx context.Context, query string, tools []string, backend, answer string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO turns (query, tools, backend, answer) VALUES (?, ?, ?, ?)`,
		query, strings.Join(tools, ","), backend, answer,
	)
	return err
}

// Recent returns up to limit turns, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Turn, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, created_at, query, tools, backend, answer
		 FROM turns ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var createdAt, tools string
		if err := rows.Scan(&t.ID, &createdAt, &t.Query, &tools, &t.Backend, &t.Answer); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		if tools != "" {
			t.Tools = strings.Split(tools, ",")
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
