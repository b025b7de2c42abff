package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// StatsRepo aggregates row counts for the forum_entities gauge.
type StatsRepo struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

// Counts returns the number of rows per entity, keyed users, categories, questions, answers.
func (r *StatsRepo) Counts(ctx context.Context) (map[string]int, error) {
	var users, categories, questions, answers int
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM answers)
	`).Scan(&users, &categories, &questions, &answers)
	if err != nil {
		return nil, fmt.Errorf("count entities: %w", err)
	}
	return map[string]int{
		"users":      users,
		"categories": categories,
		"questions":  questions,
		"answers":    answers,
	}, nil
}
