package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    education_level TEXT NOT NULL DEFAULT '',
    major TEXT NOT NULL DEFAULT '',
    graduation_year INT NOT NULL DEFAULT 0,
    gpa DOUBLE PRECISION NOT NULL DEFAULT 0,
    target_degree TEXT NOT NULL DEFAULT '',
    field_of_study TEXT NOT NULL DEFAULT '',
    intake_year INT NOT NULL DEFAULT 0,
    preferred_countries TEXT[] NOT NULL DEFAULT '{}',
    budget_min INT NOT NULL DEFAULT 0,
    budget_max INT,
    funding_type TEXT NOT NULL DEFAULT '',
    ielts_status TEXT NOT NULL DEFAULT '',
    gre_status TEXT NOT NULL DEFAULT '',
    sop_status TEXT NOT NULL DEFAULT '',
    profile_completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS user_stages (
    user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    current_stage TEXT NOT NULL DEFAULT 'PROFILE'
);

CREATE TABLE IF NOT EXISTS universities (
    id TEXT PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    country TEXT NOT NULL,
    annual_cost INT NOT NULL DEFAULT 0,
    ranking_tier TEXT NOT NULL DEFAULT 'MID',
    competition_level TEXT NOT NULL DEFAULT 'MEDIUM'
);

CREATE TABLE IF NOT EXISTS shortlists (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    university_id TEXT NOT NULL REFERENCES universities(id),
    category TEXT NOT NULL DEFAULT 'TARGET',
    locked BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (user_id, university_id)
);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    university_id TEXT REFERENCES universities(id),
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'PENDING',
    generated_by_ai BOOLEAN NOT NULL DEFAULT FALSE
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
