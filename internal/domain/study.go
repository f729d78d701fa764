package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxSentenceLength caps the original sentence of a study entry.
const MaxSentenceLength = 1000

// DefaultSubjects is the closed list of subjects seeded at startup.
// The same list is embedded into the classifier prompt, so the model
// can only pick from categories the map already knows about.
var DefaultSubjects = []string{
	"Data Structures & Algorithms",
	"Operating Systems",
	"Web Development",
	"Database Systems",
	"Machine Learning",
	"Computer Networks",
	"Software Engineering",
	"Mobile Development",
	"DevOps",
	"Cybersecurity",
	"Programming Languages",
	"System Design",
	"Mathematics",
	"Computer Graphics",
	"Other",
}

// FallbackSubject is the catch-all subject used when classification
// cannot determine a better category.
const FallbackSubject = "Other"

// Subject is a coarse knowledge category (e.g. "Database Systems").
// Names are unique case-insensitively. Subjects are never deleted or merged.
type Subject struct {
	ID          uuid.UUID
	Name        string
	Description *string
	CreatedAt   time.Time
}

// Topic is a specific concept scoped under exactly one subject.
// Uniqueness is (subject, name) case-insensitive. ConfidenceScore is set
// once, from the classification that first created the topic.
type Topic struct {
	ID              uuid.UUID
	SubjectID       uuid.UUID
	Name            string
	ConfidenceScore float64
	CreatedAt       time.Time

	// Subject is eagerly loaded alongside the topic where the caller
	// needs it; nil when not resolved.
	Subject *Subject
}

// StudyEntry is one free-text submission by a user. Immutable after
// creation except for its topic links, which are appended at creation
// time only.
type StudyEntry struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	OriginalSentence string

	// StudiedAt defaults to creation time but is overridable by the
	// caller. Nil timestamps are tolerated by aggregation.
	StudiedAt *time.Time

	// CreatedAt is the audit timestamp, always the insertion time.
	CreatedAt time.Time

	// Topics are the entry's topic links, eagerly loaded by the
	// storage layer.
	Topics []StudyEntryTopic
}

// StudyEntryTopic links one study entry to one topic with a
// per-occurrence priority flag. At most one link exists per
// (entry, topic) pair; its lifetime is owned by the entry.
type StudyEntryTopic struct {
	EntryID    uuid.UUID
	TopicID    uuid.UUID
	IsPriority bool

	// Topic is eagerly loaded; a nil topic (or a topic with a nil
	// subject) is skipped during aggregation.
	Topic *Topic
}

// ClassifiedTopic is one topic extracted from a sentence by the LLM
// classifier or the local fallback.
type ClassifiedTopic struct {
	Topic      string
	Subject    string
	Priority   bool
	Reason     string
	Confidence float64
}

// TopicSummary is the aggregated view of one topic for reports and the
// knowledge map.
type TopicSummary struct {
	Name          string
	Count         int
	IsPriority    bool
	LastStudiedAt *time.Time
}

// SubjectSummary groups topic summaries under one subject.
// TotalStudies equals the sum of its topics' counts.
type SubjectSummary struct {
	Subject      string
	Topics       []TopicSummary
	TotalStudies int
}
