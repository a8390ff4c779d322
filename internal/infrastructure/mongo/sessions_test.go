package mongo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"pocketCalc/internal/domain"
	"pocketCalc/internal/pkg/testutil"
)

// mongoContainer — контейнер MongoDB, поднимается один раз для всех тестов пакета.
var mongoContainer *testutil.MongoContainer

func TestMain(m *testing.M) {
	testutil.RunWith(m, testutil.NewMongoContainer, func(c *testutil.MongoContainer) { mongoContainer = c })
}

// setupRepo подключается к тестовой MongoDB и очищает коллекцию.
func setupRepo(t *testing.T) *SessionRepo {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	ctx := context.Background()
	client, err := New(ctx, &Config{URI: mongoContainer.URI(), Database: "pocketcalc_test", Collection: "sessions"})
	require.NoError(t, err, "не удалось подключиться к MongoDB")
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	_, err = client.Coll().DeleteMany(ctx, bson.D{})
	require.NoError(t, err)

	return NewSessionRepo(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSession(id string) domain.Session {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Session{ID: id, State: domain.NewState(), Version: 1, CreatedAt: now, UpdatedAt: now}
}

func TestSessionRepo_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	s := newSession("s-1")
	s.State = s.State.InputDigit('7').InputOperator(domain.OpDiv)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, s.State, got.State)
	assert.Equal(t, 1, got.Version)
	assert.WithinDuration(t, s.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func TestSessionRepo_Update_Versioned(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	s := newSession("s-1")
	require.NoError(t, repo.Create(ctx, s))

	s.State = s.State.InputDecimal()
	s.Version = 2
	require.NoError(t, repo.Update(ctx, s))
	assert.ErrorIs(t, repo.Update(ctx, s), domain.ErrSessionConflict)

	got, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "0.", got.State.Display)

	missing := newSession("nope")
	missing.Version = 2
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrSessionNotFound)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSession("s-1")))
	require.NoError(t, repo.Delete(ctx, "s-1"))

	assert.ErrorIs(t, repo.Delete(ctx, "s-1"), domain.ErrSessionNotFound)
	_, err := repo.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
