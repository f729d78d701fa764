package study

import (
	"context"
	"sync"

	"github.com/knowtify/backend/internal/domain"
)

var (
	_ classifier = &classifierMock{}
	_ txManager  = &txManagerMock{}
)

type classifierMock struct {
	ClassifyFunc func(ctx context.Context, sentence string) ([]domain.ClassifiedTopic, error)

	calls struct {
		Classify []struct {
			Sentence string
		}
	}
	lockClassify sync.RWMutex
}

func (mock *classifierMock) Classify(ctx context.Context, sentence string) ([]domain.ClassifiedTopic, error) {
	if mock.ClassifyFunc == nil {
		panic("classifierMock.ClassifyFunc: method is nil but classifier.Classify was just called")
	}
	callInfo := struct{ Sentence string }{Sentence: sentence}
	mock.lockClassify.Lock()
	mock.calls.Classify = append(mock.calls.Classify, callInfo)
	mock.lockClassify.Unlock()
	return mock.ClassifyFunc(ctx, sentence)
}

func (mock *classifierMock) ClassifyCalls() []struct {
	Sentence string
} {
	mock.lockClassify.RLock()
	calls := mock.calls.Classify
	mock.lockClassify.RUnlock()
	return calls
}

// txManagerMock runs the callback directly, without a real transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
