// Package entry implements the StudyEntry repository using PostgreSQL.
//
// List queries eagerly load the topic links together with their topic and
// subject rows in a single LEFT JOIN query, then group the flat rows back
// into entries in Go. Entries without topics come back with an empty Topics
// slice.
package entry

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/knowtify/backend/internal/adapter/postgres"
	"github.com/knowtify/backend/internal/domain"
)

// Repo provides study entry persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new study entry repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const createSQL = `
INSERT INTO study_entries (id, user_id, original_sentence, studied_at)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, original_sentence, studied_at, created_at`

const createLinkSQL = `
INSERT INTO study_entry_topics (entry_id, topic_id, is_priority)
VALUES ($1, $2, $3)
ON CONFLICT (entry_id, topic_id) DO UPDATE
SET is_priority = study_entry_topics.is_priority OR EXCLUDED.is_priority`

// Create inserts a new study entry. A nil studiedAt keeps the database
// default of now().
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, sentence string, studiedAt *time.Time) (*domain.StudyEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var at pgtype.Timestamptz
	if studiedAt != nil {
		at = pgtype.Timestamptz{Time: *studiedAt, Valid: true}
	} else {
		at = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	}

	row := querier.QueryRow(ctx, createSQL, uuid.New(), userID, sentence, at)
	e, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "study entry")
	}
	e.Topics = []domain.StudyEntryTopic{}
	return e, nil
}

// CreateLink attaches a topic to an entry. Linking the same topic twice
// keeps one row; the priority flags are OR-ed so a priority mark is never
// lost to a later non-priority link.
func (r *Repo) CreateLink(ctx context.Context, entryID, topicID uuid.UUID, isPriority bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, createLinkSQL, entryID, topicID, isPriority); err != nil {
		return postgres.MapError(err, "study entry topic")
	}
	return nil
}

// ListByUser returns all entries of the user with topics loaded,
// newest studied first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudyEntry, error) {
	return r.list(ctx, baseSelect().Where(sq.Eq{"e.user_id": userID}))
}

// ListByUserAndRange returns the user's entries whose studied_at falls
// inside [from, to], with topics loaded, newest studied first.
func (r *Repo) ListByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.StudyEntry, error) {
	return r.list(ctx, baseSelect().
		Where(sq.Eq{"e.user_id": userID}).
		Where(sq.GtOrEq{"e.studied_at": from}).
		Where(sq.LtOrEq{"e.studied_at": to}))
}

// ListRecent returns the user's most recent entries, newest studied first,
// capped at limit, with topics loaded.
func (r *Repo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyEntry, error) {
	// Question placeholders here: the fragment is embedded into the outer
	// query, whose Dollar conversion renumbers all placeholders at once.
	recent := sq.
		Select("id").
		From("study_entries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("studied_at DESC NULLS LAST", "created_at DESC").
		Limit(uint64(limit))

	recentSQL, recentArgs, err := recent.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent entries query: %w", err)
	}

	return r.list(ctx, baseSelect().
		Where(sq.Expr(fmt.Sprintf("e.id IN (%s)", recentSQL), recentArgs...)))
}

func baseSelect() sq.SelectBuilder {
	return builder.
		Select(
			"e.id", "e.user_id", "e.original_sentence", "e.studied_at", "e.created_at",
			"st.topic_id", "st.is_priority",
			"t.subject_id", "t.name", "t.confidence_score", "t.created_at",
			"s.name", "s.description", "s.created_at",
		).
		From("study_entries e").
		LeftJoin("study_entry_topics st ON st.entry_id = e.id").
		LeftJoin("topics t ON t.id = st.topic_id").
		LeftJoin("subjects s ON s.id = t.subject_id").
		OrderBy("e.studied_at DESC NULLS LAST", "e.created_at DESC", "e.id", "t.name")
}

func (r *Repo) list(ctx context.Context, query sq.SelectBuilder) ([]*domain.StudyEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entries query: %w", err)
	}

	rows, err := querier.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list study entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.StudyEntry{}
	byID := map[uuid.UUID]*domain.StudyEntry{}

	for rows.Next() {
		var (
			entryID      uuid.UUID
			userID       uuid.UUID
			sentence     string
			studiedAt    pgtype.Timestamptz
			createdAt    time.Time
			topicID      pgtype.UUID
			isPriority   pgtype.Bool
			subjectID    pgtype.UUID
			topicName    pgtype.Text
			confidence   pgtype.Float8
			topicCreated pgtype.Timestamptz
			subjName     pgtype.Text
			subjDesc     pgtype.Text
			subjCreated  pgtype.Timestamptz
		)
		err := rows.Scan(
			&entryID, &userID, &sentence, &studiedAt, &createdAt,
			&topicID, &isPriority,
			&subjectID, &topicName, &confidence, &topicCreated,
			&subjName, &subjDesc, &subjCreated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan study entry row: %w", err)
		}

		e, ok := byID[entryID]
		if !ok {
			e = &domain.StudyEntry{
				ID:               entryID,
				UserID:           userID,
				OriginalSentence: sentence,
				CreatedAt:        createdAt,
				Topics:           []domain.StudyEntryTopic{},
			}
			if studiedAt.Valid {
				at := studiedAt.Time
				e.StudiedAt = &at
			}
			byID[entryID] = e
			entries = append(entries, e)
		}

		// LEFT JOIN: entry without topics yields NULL topic columns.
		if !topicID.Valid {
			continue
		}

		tID := uuid.UUID(topicID.Bytes)
		topic := &domain.Topic{
			ID:              tID,
			SubjectID:       uuid.UUID(subjectID.Bytes),
			Name:            topicName.String,
			ConfidenceScore: confidence.Float64,
			CreatedAt:       topicCreated.Time,
		}
		if subjName.Valid {
			subject := &domain.Subject{
				ID:        uuid.UUID(subjectID.Bytes),
				Name:      subjName.String,
				CreatedAt: subjCreated.Time,
			}
			if subjDesc.Valid {
				subject.Description = &subjDesc.String
			}
			topic.Subject = subject
		}

		e.Topics = append(e.Topics, domain.StudyEntryTopic{
			EntryID:    entryID,
			TopicID:    tID,
			IsPriority: isPriority.Bool,
			Topic:      topic,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list study entries: %w", err)
	}

	return entries, nil
}

type scanTarget interface {
	Scan(dest ...any) error
}

func scanEntry(row scanTarget) (*domain.StudyEntry, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		sentence  string
		studiedAt pgtype.Timestamptz
		createdAt time.Time
	)
	if err := row.Scan(&id, &userID, &sentence, &studiedAt, &createdAt); err != nil {
		return nil, err
	}

	e := &domain.StudyEntry{
		ID:               id,
		UserID:           userID,
		OriginalSentence: sentence,
		CreatedAt:        createdAt,
	}
	if studiedAt.Valid {
		at := studiedAt.Time
		e.StudiedAt = &at
	}
	return e, nil
}
