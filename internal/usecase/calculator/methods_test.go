package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pocketCalc/internal/domain"
	"pocketCalc/internal/mocks"
	"pocketCalc/internal/ports"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// newTestUseCase фиксирует время и id, чтобы ожидания в моках были детерминированными.
func newTestUseCase(repo ports.ISessionRepository, cache ports.ISessionCache, broker ports.IProducer, analytics ports.IKeyAnalytics) *UseCase {
	uc := New(repo, cache, broker, analytics, newTestLogger())
	uc.now = func() time.Time { return testNow }
	uc.newID = func() string { return "s-1" }
	return uc
}

func storedSession() *domain.Session {
	return &domain.Session{ID: "s-1", State: domain.NewState(), Version: 1, CreatedAt: testNow, UpdatedAt: testNow}
}

func TestCreateSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	want := *storedSession()
	gomock.InOrder(
		mockRepo.EXPECT().Create(gomock.Any(), want).Return(nil),
		mockCache.EXPECT().Set(gomock.Any(), want).Return(nil),
	)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.CreateSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "s-1", s.ID)
	assert.Equal(t, "0", s.State.Display)
	assert.Equal(t, 1, s.Version)
}

func TestCreateSession_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	// кэш не трогаем

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.CreateSession(context.Background())

	assert.Nil(t, s)
	assert.EqualError(t, err, "db down")
}

// Cache Hit — сессия берётся из кэша, БД не вызывается
func TestSession_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.Session(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, storedSession(), s)
}

// Cache Miss — читаем из БД и прогреваем кэш
func TestSession_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(nil, false, nil),
		mockRepo.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), nil),
		mockCache.EXPECT().Set(gomock.Any(), *storedSession()).Return(nil),
	)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.Session(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, "s-1", s.ID)
}

// Ошибка кэша не роняет чтение: идём в БД
func TestSession_CacheErrorFallsBackToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(nil, false, errors.New("redis timeout"))
	mockRepo.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), nil)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis timeout"))

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.Session(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, 1, s.Version)
}

func TestSession_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "nope").Return(nil, false, nil)
	mockRepo.EXPECT().Get(gomock.Any(), "nope").Return(nil, domain.ErrSessionNotFound)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.Session(context.Background(), "nope")

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// Полный флоу нажатий: кэш → редьюсер → БД → кэш → брокер (пачка, по событию на клавишу)
func TestPress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	keys := []domain.Key{"2", "+", "3", "*", "4", "="}

	var saved domain.Session
	var sent []domain.KeyEvent
	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil),
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s domain.Session) error {
			saved = s
			return nil
		}),
		mockCache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil),
		mockBroker.EXPECT().Send(gomock.Any(), []byte("s-1"), gomock.Any()).DoAndReturn(func(_ context.Context, _ []byte, values ...[]byte) error {
			for _, value := range values {
				var ev domain.KeyEvent
				require.NoError(t, json.Unmarshal(value, &ev))
				sent = append(sent, ev)
			}
			return nil
		}),
	)

	uc := newTestUseCase(mockRepo, mockCache, mockBroker, nil)

	s, err := uc.Press(context.Background(), "s-1", keys...)

	require.NoError(t, err)
	assert.Equal(t, "20", s.State.Display)
	assert.Equal(t, 2, s.Version)
	assert.Equal(t, *s, saved)

	require.Len(t, sent, len(keys))
	assert.Equal(t, domain.Key("2"), sent[0].Key)
	assert.Equal(t, "5", sent[3].Display, "после × цепочка 2+3 уже посчитана")
	assert.Equal(t, domain.OpMul, sent[3].Pending)
	assert.Equal(t, "20", sent[5].Display)
}

// Нет клавиш — нет записи
func TestPress_NoKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	s, err := uc.Press(context.Background(), "s-1")

	require.NoError(t, err)
	assert.Equal(t, 1, s.Version)
}

// Конфликт версий — устаревшая копия выкидывается из кэша
func TestPress_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil),
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrSessionConflict),
		mockCache.EXPECT().Delete(gomock.Any(), "s-1").Return(nil),
	)
	// брокер не вызывается

	uc := newTestUseCase(mockRepo, mockCache, mockBroker, nil)

	s, err := uc.Press(context.Background(), "s-1", "7")

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrSessionConflict)
}

// Сессию удалили в обход этого инстанса — кэш больше не отдаёт её
func TestPress_NotFoundEvictsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil),
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrSessionNotFound),
		mockCache.EXPECT().Delete(gomock.Any(), "s-1").Return(nil),
	)

	uc := newTestUseCase(mockRepo, mockCache, mockBroker, nil)

	s, err := uc.Press(context.Background(), "s-1", "7")

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// Ошибка брокера не ломает нажатие
func TestPress_BrokerErrorIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	mockBroker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	uc := newTestUseCase(mockRepo, mockCache, mockBroker, nil)

	s, err := uc.Press(context.Background(), "s-1", "9")

	require.NoError(t, err)
	assert.Equal(t, "9", s.State.Display)
}

// memRepo — репозиторий в памяти с проверкой версий, для теста параллельных нажатий.
type memRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func (r *memRepo) Create(_ context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *memRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *memRepo) Update(_ context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.sessions[s.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if cur.Version != s.Version-1 {
		return domain.ErrSessionConflict
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memRepo) Ping(context.Context) error { return nil }

// Параллельные нажатия одной сессии сериализуются: ни одного конфликта, все цифры на месте.
func TestPress_SerializedPerSession(t *testing.T) {
	repo := &memRepo{sessions: map[string]domain.Session{}}
	uc := New(repo, nil, nil, nil, newTestLogger())

	s, err := uc.CreateSession(context.Background())
	require.NoError(t, err)

	const presses = 50
	var wg sync.WaitGroup
	errs := make(chan error, presses)
	for i := 0; i < presses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Press(context.Background(), s.ID, "1"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("press: %v", err)
	}

	got, err := uc.Session(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1", presses), got.State.Display)
	assert.Equal(t, presses+1, got.Version)
	assert.Empty(t, uc.locks.m, "мьютексы сессий освобождаются")
}

func TestDeleteSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	gomock.InOrder(
		mockRepo.EXPECT().Delete(gomock.Any(), "s-1").Return(nil),
		mockCache.EXPECT().Delete(gomock.Any(), "s-1").Return(nil),
	)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	require.NoError(t, uc.DeleteSession(context.Background(), "s-1"))
}

// Сессии нет в БД (удалил другой инстанс) — копия из кэша тоже выкидывается
func TestDeleteSession_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	gomock.InOrder(
		mockRepo.EXPECT().Delete(gomock.Any(), "s-1").Return(domain.ErrSessionNotFound),
		mockCache.EXPECT().Delete(gomock.Any(), "s-1").Return(nil),
	)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	assert.ErrorIs(t, uc.DeleteSession(context.Background(), "s-1"), domain.ErrSessionNotFound)
}

// Удаление ждёт идущее нажатие: кэш чистится после того, как Press положил туда сессию
func TestDeleteSession_WaitsForPress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockISessionRepository(ctrl)
	mockCache := mocks.NewMockISessionCache(ctrl)

	updating := make(chan struct{})
	release := make(chan struct{})
	deleted := make(chan struct{})
	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "s-1").Return(storedSession(), true, nil),
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.Session) error {
			close(updating)
			<-release
			return nil
		}),
		mockCache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil),
		mockRepo.EXPECT().Delete(gomock.Any(), "s-1").DoAndReturn(func(context.Context, string) error {
			close(deleted)
			return nil
		}),
		mockCache.EXPECT().Delete(gomock.Any(), "s-1").Return(nil),
	)

	uc := newTestUseCase(mockRepo, mockCache, nil, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := uc.Press(context.Background(), "s-1", "5")
		assert.NoError(t, err)
	}()
	<-updating
	go func() {
		defer wg.Done()
		assert.NoError(t, uc.DeleteSession(context.Background(), "s-1"))
	}()

	select {
	case <-deleted:
		t.Fatal("удаление прошло, пока нажатие держит сессию")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	wg.Wait()
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		number1   float64
		number2   float64
		operation string
		want      float64
		wantErr   error
	}{
		{name: "сложение", number1: 10, number2: 5, operation: "+", want: 15},
		{name: "умножение символом кнопки", number1: 3, number2: 4, operation: "×", want: 12},
		{name: "деление", number1: 20, number2: 4, operation: "/", want: 5},
		{name: "деление на ноль", number1: 10, number2: 0, operation: "÷", want: 0},
		{name: "неизвестная операция", number1: 1, number2: 2, operation: "^", wantErr: domain.ErrUnknownOperation},
	}

	// Для Evaluate зависимости не нужны — передаём nil
	uc := New(nil, nil, nil, nil, newTestLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Evaluate(context.Background(), tt.number1, tt.number2, tt.operation)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleKeyEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalytics := mocks.NewMockIKeyAnalytics(ctrl)

	ev := domain.KeyEvent{SessionID: "s-1", Key: "7", Display: "7", At: testNow}
	mockAnalytics.EXPECT().WriteKeyEvent(gomock.Any(), ev).Return(nil)
	mockAnalytics.EXPECT().WriteKeyEvent(gomock.Any(), ev).Return(errors.New("click down"))

	uc := newTestUseCase(nil, nil, nil, mockAnalytics)

	require.NoError(t, uc.HandleKeyEvent(context.Background(), ev))
	assert.EqualError(t, uc.HandleKeyEvent(context.Background(), ev), "click down")
}
