package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/internal/parsing"
	"github.com/knowtify/backend/pkg/ctxutil"
)

// CreateEntry records a study entry. The sentence is classified into topics,
// each topic's subject and topic rows are resolved (created on first sight)
// and linked to the entry. Classification failures fall back to the local
// parser; a failed topic is logged and skipped so the entry itself always
// survives. The returned entry carries only the links that were persisted.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.StudyEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	classified, err := s.classifier.Classify(ctx, input.Sentence)
	if err != nil {
		s.log.Warn("classifier failed, using fallback parsing",
			"user_id", userID,
			"error", err,
		)
		classified = parsing.FallbackClassify(input.Sentence)
	}

	entry, err := s.entries.Create(ctx, userID, input.Sentence, input.StudiedAt)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	// Each topic runs in its own transaction: a failed statement aborts a
	// Postgres transaction, so sharing one would let a single bad topic take
	// down the rest of the batch.
	linked := map[uuid.UUID]int{}
	for _, ct := range classified {
		link, err := s.attachTopic(ctx, entry, ct)
		if err != nil {
			s.log.Warn("skipping topic",
				"user_id", userID,
				"entry_id", entry.ID,
				"topic", ct.Topic,
				"subject", ct.Subject,
				"error", err,
			)
			continue
		}
		if link == nil {
			continue
		}

		// The link table holds one row per (entry, topic) with the priority
		// flags OR-ed; the echo mirrors that.
		if idx, ok := linked[link.TopicID]; ok {
			if link.IsPriority {
				entry.Topics[idx].IsPriority = true
			}
			continue
		}
		linked[link.TopicID] = len(entry.Topics)
		entry.Topics = append(entry.Topics, *link)
	}

	s.log.Info("study entry created",
		"user_id", userID,
		"entry_id", entry.ID,
		"topics", len(entry.Topics),
	)

	return entry, nil
}

// attachTopic resolves one classified topic and links it to the entry,
// all inside a single transaction. Returns nil without error for topics
// that normalize to nothing.
func (s *Service) attachTopic(ctx context.Context, entry *domain.StudyEntry, ct domain.ClassifiedTopic) (*domain.StudyEntryTopic, error) {
	topicName := strings.ToLower(strings.TrimSpace(ct.Topic))
	if topicName == "" {
		return nil, nil
	}

	subjectName := strings.TrimSpace(ct.Subject)
	if subjectName == "" {
		subjectName = domain.FallbackSubject
	}

	var link *domain.StudyEntryTopic

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		description := "Subject: " + subjectName
		subject, err := s.subjects.GetOrCreate(txCtx, subjectName, &description)
		if err != nil {
			return fmt.Errorf("resolve subject %q: %w", subjectName, err)
		}

		topic, err := s.topics.GetOrCreate(txCtx, subject.ID, topicName, ct.Confidence)
		if err != nil {
			return fmt.Errorf("resolve topic %q: %w", topicName, err)
		}

		if err := s.entries.CreateLink(txCtx, entry.ID, topic.ID, ct.Priority); err != nil {
			return fmt.Errorf("link topic %q: %w", topicName, err)
		}

		topic.Subject = subject
		link = &domain.StudyEntryTopic{
			EntryID:    entry.ID,
			TopicID:    topic.ID,
			IsPriority: ct.Priority,
			Topic:      topic,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}
