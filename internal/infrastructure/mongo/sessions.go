package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"pocketCalc/internal/domain"
	"pocketCalc/internal/ports"
)

var _ ports.ISessionRepository = (*SessionRepo)(nil)

// stateDoc — состояние калькулятора внутри документа сессии.
type stateDoc struct {
	Display         string   `bson:"display"`
	Accumulator     *float64 `bson:"accumulator,omitempty"`
	Pending         string   `bson:"pending_operator"`
	AwaitingOperand bool     `bson:"awaiting_operand"`
}

// sessionDoc — документ в коллекции sessions, _id — id сессии.
type sessionDoc struct {
	ID        string    `bson:"_id"`
	State     stateDoc  `bson:"state"`
	Version   int       `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toDoc(s domain.Session) sessionDoc {
	return sessionDoc{
		ID: s.ID,
		State: stateDoc{
			Display:         s.State.Display,
			Accumulator:     s.State.Accumulator,
			Pending:         string(s.State.Pending),
			AwaitingOperand: s.State.AwaitingOperand,
		},
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (d sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID: d.ID,
		State: domain.State{
			Display:         d.State.Display,
			Accumulator:     d.State.Accumulator,
			Pending:         domain.Operator(d.State.Pending),
			AwaitingOperand: d.State.AwaitingOperand,
		},
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// SessionRepo реализует ports.ISessionRepository для MongoDB.
type SessionRepo struct {
	client *Client
	log    *slog.Logger
}

// NewSessionRepo возвращает репозиторий сессий.
func NewSessionRepo(client *Client, log *slog.Logger) *SessionRepo {
	return &SessionRepo{client: client, log: log}
}

// Create сохраняет новую сессию.
func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	if _, err := r.client.Coll().InsertOne(ctx, toDoc(s)); err != nil {
		r.log.Debug("Create failed", "id", s.ID, "error", err)
		return err
	}
	return nil
}

// Get читает сессию по id.
func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	var doc sessionDoc
	err := r.client.Coll().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		r.log.Debug("Get failed", "id", id, "error", err)
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update заменяет документ, если в коллекции лежит предыдущая версия (s.Version-1).
func (r *SessionRepo) Update(ctx context.Context, s domain.Session) error {
	res, err := r.client.Coll().ReplaceOne(ctx, bson.M{"_id": s.ID, "version": s.Version - 1}, toDoc(s))
	if err != nil {
		r.log.Debug("Update failed", "id", s.ID, "error", err)
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.client.Coll().CountDocuments(ctx, bson.M{"_id": s.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return domain.ErrSessionConflict
}

// Delete удаляет сессию.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.client.Coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Debug("Delete failed", "id", id, "error", err)
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Ping проверяет доступность БД.
func (r *SessionRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
