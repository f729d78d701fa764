package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
)

var (
	_ userRepo   = &userRepoMock{}
	_ jwtManager = &jwtManagerMock{}
)

type userRepoMock struct {
	CreateFunc        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)

	calls struct {
		Create []struct {
			Username     string
			PasswordHash string
		}
		GetByUsername []struct {
			Username string
		}
	}
	lockCreate        sync.RWMutex
	lockGetByUsername sync.RWMutex
}

func (mock *userRepoMock) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Username     string
		PasswordHash string
	}{Username: username, PasswordHash: passwordHash}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, username, passwordHash)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Username     string
	PasswordHash string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if mock.GetByUsernameFunc == nil {
		panic("userRepoMock.GetByUsernameFunc: method is nil but userRepo.GetByUsername was just called")
	}
	callInfo := struct{ Username string }{Username: username}
	mock.lockGetByUsername.Lock()
	mock.calls.GetByUsername = append(mock.calls.GetByUsername, callInfo)
	mock.lockGetByUsername.Unlock()
	return mock.GetByUsernameFunc(ctx, username)
}

func (mock *userRepoMock) GetByUsernameCalls() []struct {
	Username string
} {
	mock.lockGetByUsername.RLock()
	calls := mock.calls.GetByUsername
	mock.lockGetByUsername.RUnlock()
	return calls
}

type jwtManagerMock struct {
	GenerateTokenFunc func(userID uuid.UUID, username string) (string, error)
	ValidateTokenFunc func(tokenString string) (uuid.UUID, string, error)

	calls struct {
		GenerateToken []struct {
			UserID   uuid.UUID
			Username string
		}
		ValidateToken []struct {
			TokenString string
		}
	}
	lockGenerateToken sync.RWMutex
	lockValidateToken sync.RWMutex
}

func (mock *jwtManagerMock) GenerateToken(userID uuid.UUID, username string) (string, error) {
	if mock.GenerateTokenFunc == nil {
		panic("jwtManagerMock.GenerateTokenFunc: method is nil but jwtManager.GenerateToken was just called")
	}
	callInfo := struct {
		UserID   uuid.UUID
		Username string
	}{UserID: userID, Username: username}
	mock.lockGenerateToken.Lock()
	mock.calls.GenerateToken = append(mock.calls.GenerateToken, callInfo)
	mock.lockGenerateToken.Unlock()
	return mock.GenerateTokenFunc(userID, username)
}

func (mock *jwtManagerMock) GenerateTokenCalls() []struct {
	UserID   uuid.UUID
	Username string
} {
	mock.lockGenerateToken.RLock()
	calls := mock.calls.GenerateToken
	mock.lockGenerateToken.RUnlock()
	return calls
}

func (mock *jwtManagerMock) ValidateToken(tokenString string) (uuid.UUID, string, error) {
	if mock.ValidateTokenFunc == nil {
		panic("jwtManagerMock.ValidateTokenFunc: method is nil but jwtManager.ValidateToken was just called")
	}
	callInfo := struct{ TokenString string }{TokenString: tokenString}
	mock.lockValidateToken.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, callInfo)
	mock.lockValidateToken.Unlock()
	return mock.ValidateTokenFunc(tokenString)
}

func (mock *jwtManagerMock) ValidateTokenCalls() []struct {
	TokenString string
} {
	mock.lockValidateToken.RLock()
	calls := mock.calls.ValidateToken
	mock.lockValidateToken.RUnlock()
	return calls
}
