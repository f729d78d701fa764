package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knowtify/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a throwaway password hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesAB",
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedSubject creates a subject with a unique name. Returns a filled domain.Subject.
func SeedSubject(t *testing.T, pool *pgxpool.Pool) domain.Subject {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	subject := domain.Subject{
		ID:        uuid.New(),
		Name:      "Subject " + suffix,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO subjects (id, name, created_at) VALUES ($1, $2, $3)`,
		subject.ID, subject.Name, subject.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubject insert subject: %v", err)
	}

	return subject
}

// SeedTopic creates a topic under the given subject with a unique name.
// Returns a filled domain.Topic.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, subjectID uuid.UUID) domain.Topic {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	topic := domain.Topic{
		ID:              uuid.New(),
		SubjectID:       subjectID,
		Name:            "topic " + suffix,
		ConfidenceScore: 0.9,
		CreatedAt:       now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO topics (id, subject_id, name, confidence_score, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		topic.ID, topic.SubjectID, topic.Name, topic.ConfidenceScore, topic.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic insert topic: %v", err)
	}

	return topic
}
