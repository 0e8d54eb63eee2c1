package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"time"

	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/database"
	"github.com/studiva/classwork-backend/internal/logger"
)

// issue-session inserts a session row for local development. In production
// sessions come from the platform's login flow; this service never mints
// them itself.
func main() {
	var (
		subjectID int
		role      string
		ttl       time.Duration
	)
	flag.IntVar(&subjectID, "subject", 0, "Student or teacher id")
	flag.StringVar(&role, "role", "student", "Session role: student or teacher")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "Session lifetime")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if subjectID <= 0 {
		log.Fatal().Msg("-subject is required")
	}
	if role != "student" && role != "teacher" {
		log.Fatal().Str("role", role).Msg("Role must be student or teacher")
	}

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate token")
	}
	token := hex.EncodeToString(raw)
	expiresAt := time.Now().Add(ttl)

	_, err = pool.Exec(ctx, `
		INSERT INTO sessions (token, subject_id, role, expires_at)
		VALUES ($1, $2, $3, $4)`,
		token, subjectID, role, expiresAt)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to insert session")
	}

	fmt.Printf("Token:      %s\n", token)
	fmt.Printf("Role:       %s\n", role)
	fmt.Printf("Subject ID: %d\n", subjectID)
	fmt.Printf("Expires:    %s\n", expiresAt.Format(time.RFC3339))
}
