package report

import (
	"sort"

	"github.com/knowtify/backend/internal/domain"
)

// Aggregate groups study entries by subject and topic and computes per-topic
// statistics. Links whose topic or subject failed to load are skipped.
//
// Per topic: count of occurrences, isPriority true if any occurrence was
// marked priority, lastStudiedAt the maximum studiedAt among occurrences
// (entries without a timestamp do not update it).
//
// Topics within a subject are sorted by lastStudiedAt descending with nulls
// last, ties by name ascending. Subjects are sorted by totalStudies
// descending, ties by name ascending. Pure function, no I/O.
func Aggregate(entries []*domain.StudyEntry) []domain.SubjectSummary {
	// Accumulators keyed by subject name, topics keyed by topic name.
	// Insertion order is kept so that pre-sort order is deterministic.
	type subjectAcc struct {
		name       string
		topicOrder []string
		topics     map[string]*domain.TopicSummary
	}

	subjectOrder := []string{}
	subjects := map[string]*subjectAcc{}

	for _, e := range entries {
		for _, link := range e.Topics {
			if link.Topic == nil || link.Topic.Subject == nil {
				continue
			}

			subjName := link.Topic.Subject.Name
			acc, ok := subjects[subjName]
			if !ok {
				acc = &subjectAcc{name: subjName, topics: map[string]*domain.TopicSummary{}}
				subjects[subjName] = acc
				subjectOrder = append(subjectOrder, subjName)
			}

			topicName := link.Topic.Name
			ts, ok := acc.topics[topicName]
			if !ok {
				ts = &domain.TopicSummary{Name: topicName}
				acc.topics[topicName] = ts
				acc.topicOrder = append(acc.topicOrder, topicName)
			}

			ts.Count++
			if link.IsPriority {
				ts.IsPriority = true
			}
			if e.StudiedAt != nil && (ts.LastStudiedAt == nil || e.StudiedAt.After(*ts.LastStudiedAt)) {
				at := *e.StudiedAt
				ts.LastStudiedAt = &at
			}
		}
	}

	result := make([]domain.SubjectSummary, 0, len(subjectOrder))
	for _, subjName := range subjectOrder {
		acc := subjects[subjName]

		topics := make([]domain.TopicSummary, 0, len(acc.topicOrder))
		total := 0
		for _, topicName := range acc.topicOrder {
			ts := acc.topics[topicName]
			topics = append(topics, *ts)
			total += ts.Count
		}

		sort.SliceStable(topics, func(i, j int) bool {
			return topicLess(topics[i], topics[j])
		})

		result = append(result, domain.SubjectSummary{
			Subject:      subjName,
			Topics:       topics,
			TotalStudies: total,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalStudies != result[j].TotalStudies {
			return result[i].TotalStudies > result[j].TotalStudies
		}
		return result[i].Subject < result[j].Subject
	})

	return result
}

// topicLess orders by lastStudiedAt descending with nulls last,
// ties by name ascending.
func topicLess(a, b domain.TopicSummary) bool {
	switch {
	case a.LastStudiedAt == nil && b.LastStudiedAt == nil:
		return a.Name < b.Name
	case a.LastStudiedAt == nil:
		return false
	case b.LastStudiedAt == nil:
		return true
	case !a.LastStudiedAt.Equal(*b.LastStudiedAt):
		return a.LastStudiedAt.After(*b.LastStudiedAt)
	default:
		return a.Name < b.Name
	}
}

// urgentTopics flattens every priority topic across all subjects and sorts
// them by lastStudiedAt descending with nulls last. Ties keep subject
// iteration order (stable sort, no name tie-break).
func urgentTopics(subjects []domain.SubjectSummary) []domain.TopicSummary {
	urgent := []domain.TopicSummary{}
	for _, s := range subjects {
		for _, t := range s.Topics {
			if t.IsPriority {
				urgent = append(urgent, t)
			}
		}
	}

	sort.SliceStable(urgent, func(i, j int) bool {
		a, b := urgent[i], urgent[j]
		switch {
		case a.LastStudiedAt == nil:
			return false
		case b.LastStudiedAt == nil:
			return true
		default:
			return a.LastStudiedAt.After(*b.LastStudiedAt)
		}
	})

	return urgent
}
