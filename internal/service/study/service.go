// Package study implements the study entry pipeline: a free-text sentence is
// classified into topics (LLM with a deterministic local fallback), the
// subjects and topics are resolved against storage, and the entry is linked
// to them.
package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type subjectRepo interface {
	GetOrCreate(ctx context.Context, name string, description *string) (*domain.Subject, error)
}

type topicRepo interface {
	GetOrCreate(ctx context.Context, subjectID uuid.UUID, name string, confidence float64) (*domain.Topic, error)
}

type entryRepo interface {
	Create(ctx context.Context, userID uuid.UUID, sentence string, studiedAt *time.Time) (*domain.StudyEntry, error)
	CreateLink(ctx context.Context, entryID, topicID uuid.UUID, isPriority bool) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyEntry, error)
}

// classifier is the external topic extraction call. It can fail or hang;
// the service's only resilience contract is falling back to the local parser.
type classifier interface {
	Classify(ctx context.Context, sentence string) ([]domain.ClassifiedTopic, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the study entry business logic.
type Service struct {
	users      userRepo
	subjects   subjectRepo
	topics     topicRepo
	entries    entryRepo
	classifier classifier
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new Study service.
func NewService(
	log *slog.Logger,
	users userRepo,
	subjects subjectRepo,
	topics topicRepo,
	entries entryRepo,
	classifier classifier,
	tx txManager,
) *Service {
	return &Service{
		users:      users,
		subjects:   subjects,
		topics:     topics,
		entries:    entries,
		classifier: classifier,
		tx:         tx,
		log:        log.With("service", "study"),
	}
}
