package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// DB holds the database connection
var DB *sql.DB

// Settings are the connection variables read from the environment
type Settings struct {
	URL      string // DATABASE_URL, takes precedence
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ConnString builds the pgx connection string
func (s Settings) ConnString() (string, error) {
	if s.URL != "" {
		return s.URL, nil
	}
	if s.Host == "" || s.User == "" || s.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	port := s.Port
	if port == "" {
		port = "5432"
	}
	sslmode := s.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, port, s.User, s.Password, s.Name, sslmode), nil
}

// InitDB opens and pings the database connection
func InitDB(ctx context.Context, settings Settings) error {
	connStr, err := settings.ConnString()
	if err != nil {
		return err
	}

	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
