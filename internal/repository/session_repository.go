package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// SessionRepository reads session-token bindings. Sessions are written by
// the external login flow; this service only resolves and sweeps them.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// ResolveToken looks up a non-expired session and joins the subject's
// classroom in one round trip. Returns pgx.ErrNoRows for unknown, expired,
// or dangling tokens alike.
func (r *SessionRepository) ResolveToken(ctx context.Context, token string) (*model.Identity, time.Time, error) {
	var (
		id        model.Identity
		expiresAt time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT s.subject_id, s.role, s.expires_at, COALESCE(st.classroom_id, t.classroom_id)
		 FROM sessions s
		 LEFT JOIN students st ON s.role = 'student' AND st.id = s.subject_id
		 LEFT JOIN teachers t  ON s.role = 'teacher' AND t.id  = s.subject_id
		 WHERE s.token = $1
		   AND s.expires_at > NOW()
		   AND COALESCE(st.classroom_id, t.classroom_id) IS NOT NULL`, token,
	).Scan(&id.SubjectID, &id.Role, &expiresAt, &id.ClassroomID)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &id, expiresAt, nil
}

// DeleteExpired removes session rows past their expiry. Called by the
// background sweeper; the Redis mirror expires on its own TTL.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
