package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	ListByUserFunc         func(ctx context.Context, userID uuid.UUID) ([]*domain.StudyEntry, error)
	ListByUserAndRangeFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.StudyEntry, error)

	calls struct {
		ListByUser []struct {
			UserID uuid.UUID
		}
		ListByUserAndRange []struct {
			UserID uuid.UUID
			From   time.Time
			To     time.Time
		}
	}
	lockListByUser         sync.RWMutex
	lockListByUserAndRange sync.RWMutex
}

func (mock *entryRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudyEntry, error) {
	if mock.ListByUserFunc == nil {
		panic("entryRepoMock.ListByUserFunc: method is nil but entryRepo.ListByUser was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
	}{UserID: userID}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *entryRepoMock) ListByUserCalls() []struct {
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *entryRepoMock) ListByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.StudyEntry, error) {
	if mock.ListByUserAndRangeFunc == nil {
		panic("entryRepoMock.ListByUserAndRangeFunc: method is nil but entryRepo.ListByUserAndRange was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		From   time.Time
		To     time.Time
	}{UserID: userID, From: from, To: to}
	mock.lockListByUserAndRange.Lock()
	mock.calls.ListByUserAndRange = append(mock.calls.ListByUserAndRange, callInfo)
	mock.lockListByUserAndRange.Unlock()
	return mock.ListByUserAndRangeFunc(ctx, userID, from, to)
}

func (mock *entryRepoMock) ListByUserAndRangeCalls() []struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
} {
	mock.lockListByUserAndRange.RLock()
	calls := mock.calls.ListByUserAndRange
	mock.lockListByUserAndRange.RUnlock()
	return calls
}
