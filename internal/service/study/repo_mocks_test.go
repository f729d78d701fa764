package study

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
)

var (
	_ userRepo    = &userRepoMock{}
	_ subjectRepo = &subjectRepoMock{}
	_ topicRepo   = &topicRepoMock{}
	_ entryRepo   = &entryRepoMock{}
)

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

type subjectRepoMock struct {
	GetOrCreateFunc func(ctx context.Context, name string, description *string) (*domain.Subject, error)

	calls struct {
		GetOrCreate []struct {
			Name        string
			Description *string
		}
	}
	lockGetOrCreate sync.RWMutex
}

func (mock *subjectRepoMock) GetOrCreate(ctx context.Context, name string, description *string) (*domain.Subject, error) {
	if mock.GetOrCreateFunc == nil {
		panic("subjectRepoMock.GetOrCreateFunc: method is nil but subjectRepo.GetOrCreate was just called")
	}
	callInfo := struct {
		Name        string
		Description *string
	}{Name: name, Description: description}
	mock.lockGetOrCreate.Lock()
	mock.calls.GetOrCreate = append(mock.calls.GetOrCreate, callInfo)
	mock.lockGetOrCreate.Unlock()
	return mock.GetOrCreateFunc(ctx, name, description)
}

func (mock *subjectRepoMock) GetOrCreateCalls() []struct {
	Name        string
	Description *string
} {
	mock.lockGetOrCreate.RLock()
	calls := mock.calls.GetOrCreate
	mock.lockGetOrCreate.RUnlock()
	return calls
}

type topicRepoMock struct {
	GetOrCreateFunc func(ctx context.Context, subjectID uuid.UUID, name string, confidence float64) (*domain.Topic, error)

	calls struct {
		GetOrCreate []struct {
			SubjectID  uuid.UUID
			Name       string
			Confidence float64
		}
	}
	lockGetOrCreate sync.RWMutex
}

func (mock *topicRepoMock) GetOrCreate(ctx context.Context, subjectID uuid.UUID, name string, confidence float64) (*domain.Topic, error) {
	if mock.GetOrCreateFunc == nil {
		panic("topicRepoMock.GetOrCreateFunc: method is nil but topicRepo.GetOrCreate was just called")
	}
	callInfo := struct {
		SubjectID  uuid.UUID
		Name       string
		Confidence float64
	}{SubjectID: subjectID, Name: name, Confidence: confidence}
	mock.lockGetOrCreate.Lock()
	mock.calls.GetOrCreate = append(mock.calls.GetOrCreate, callInfo)
	mock.lockGetOrCreate.Unlock()
	return mock.GetOrCreateFunc(ctx, subjectID, name, confidence)
}

func (mock *topicRepoMock) GetOrCreateCalls() []struct {
	SubjectID  uuid.UUID
	Name       string
	Confidence float64
} {
	mock.lockGetOrCreate.RLock()
	calls := mock.calls.GetOrCreate
	mock.lockGetOrCreate.RUnlock()
	return calls
}

type entryRepoMock struct {
	CreateFunc     func(ctx context.Context, userID uuid.UUID, sentence string, studiedAt *time.Time) (*domain.StudyEntry, error)
	CreateLinkFunc func(ctx context.Context, entryID, topicID uuid.UUID, isPriority bool) error
	ListRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyEntry, error)

	calls struct {
		Create []struct {
			UserID    uuid.UUID
			Sentence  string
			StudiedAt *time.Time
		}
		CreateLink []struct {
			EntryID    uuid.UUID
			TopicID    uuid.UUID
			IsPriority bool
		}
		ListRecent []struct {
			UserID uuid.UUID
			Limit  int
		}
	}
	lockCreate     sync.RWMutex
	lockCreateLink sync.RWMutex
	lockListRecent sync.RWMutex
}

func (mock *entryRepoMock) Create(ctx context.Context, userID uuid.UUID, sentence string, studiedAt *time.Time) (*domain.StudyEntry, error) {
	if mock.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but entryRepo.Create was just called")
	}
	callInfo := struct {
		UserID    uuid.UUID
		Sentence  string
		StudiedAt *time.Time
	}{UserID: userID, Sentence: sentence, StudiedAt: studiedAt}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, userID, sentence, studiedAt)
}

func (mock *entryRepoMock) CreateCalls() []struct {
	UserID    uuid.UUID
	Sentence  string
	StudiedAt *time.Time
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *entryRepoMock) CreateLink(ctx context.Context, entryID, topicID uuid.UUID, isPriority bool) error {
	if mock.CreateLinkFunc == nil {
		panic("entryRepoMock.CreateLinkFunc: method is nil but entryRepo.CreateLink was just called")
	}
	callInfo := struct {
		EntryID    uuid.UUID
		TopicID    uuid.UUID
		IsPriority bool
	}{EntryID: entryID, TopicID: topicID, IsPriority: isPriority}
	mock.lockCreateLink.Lock()
	mock.calls.CreateLink = append(mock.calls.CreateLink, callInfo)
	mock.lockCreateLink.Unlock()
	return mock.CreateLinkFunc(ctx, entryID, topicID, isPriority)
}

func (mock *entryRepoMock) CreateLinkCalls() []struct {
	EntryID    uuid.UUID
	TopicID    uuid.UUID
	IsPriority bool
} {
	mock.lockCreateLink.RLock()
	calls := mock.calls.CreateLink
	mock.lockCreateLink.RUnlock()
	return calls
}

func (mock *entryRepoMock) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyEntry, error) {
	if mock.ListRecentFunc == nil {
		panic("entryRepoMock.ListRecentFunc: method is nil but entryRepo.ListRecent was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Limit  int
	}{UserID: userID, Limit: limit}
	mock.lockListRecent.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, callInfo)
	mock.lockListRecent.Unlock()
	return mock.ListRecentFunc(ctx, userID, limit)
}

func (mock *entryRepoMock) ListRecentCalls() []struct {
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListRecent.RLock()
	calls := mock.calls.ListRecent
	mock.lockListRecent.RUnlock()
	return calls
}
