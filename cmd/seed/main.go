package main

import (
	"context"
	"fmt"
	"time"

	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/database"
	"github.com/studiva/classwork-backend/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding Demo Classroom ===")

	var classroomID int
	err = pool.QueryRow(ctx, `
		INSERT INTO classrooms (name, enroll_code)
		VALUES ('Intro to Programming', 'INTRO-2026')
		ON CONFLICT (enroll_code) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`).Scan(&classroomID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed classroom")
	}
	fmt.Printf("Classroom ID: %d\n", classroomID)

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	}

	successCount := 0
	for i, name := range names {
		email := fmt.Sprintf("student%d@example.edu", i+1)
		_, err := pool.Exec(ctx, `
			INSERT INTO students (classroom_id, display_name, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO NOTHING`,
			classroomID, name, email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("Failed to seed student")
			continue
		}
		successCount++
	}
	fmt.Printf("Seeded %d students\n", successCount)

	_, err = pool.Exec(ctx, `
		INSERT INTO teachers (classroom_id, display_name)
		SELECT $1, 'Ms. Larasati'
		WHERE NOT EXISTS (
			SELECT 1 FROM teachers WHERE classroom_id = $1 AND display_name = 'Ms. Larasati'
		)`, classroomID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed teacher")
	}

	dueSoon := time.Now().Add(7 * 24 * time.Hour)
	_, err = pool.Exec(ctx, `
		INSERT INTO assignments
			(classroom_id, course_id, title, status, due_date, max_points,
			 allow_late_submission, late_penalty_percent, max_attempts)
		SELECT v.* FROM (VALUES
			($1::int, 'go-101', 'Hello, Modules', 'active', $2::timestamptz, 100::float8, true, 10::float8, 3),
			($1::int, 'go-101', 'Error Handling Lab', 'active', $2::timestamptz, 50::float8, false, 0::float8, 0),
			($1::int, 'go-101', 'Archived Warmup', 'archived', NULL, 20::float8, false, 0::float8, 1)
		) AS v(classroom_id, course_id, title, status, due_date, max_points,
			allow_late_submission, late_penalty_percent, max_attempts)
		WHERE NOT EXISTS (
			SELECT 1 FROM assignments a
			WHERE a.classroom_id = v.classroom_id AND a.title = v.title
		)`, classroomID, dueSoon)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed assignments")
	}

	fmt.Println("Seed complete")
}
