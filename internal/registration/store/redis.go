package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"regdesk/internal/registration/models"
	"regdesk/pkg/platform/sentinel"
)

const (
	redisKeyRegistrant  = "registrant:"
	redisKeyByEmail     = "registrant:email:"
	redisKeyByAdmission = "registrant:admission:"
)

// RedisStore persists registrants in Redis: one hash per registrant plus two
// lookup keys. MSETNX claims both lookup keys in a single atomic step, so a
// racing duplicate insert loses cleanly with sentinel.ErrConflict.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) FindByEmailOrAdmissionNo(ctx context.Context, email, admissionNo string) (*models.Registrant, error) {
	id, err := s.client.Get(ctx, redisKeyByEmail+email).Result()
	if errors.Is(err, redis.Nil) {
		id, err = s.client.Get(ctx, redisKeyByAdmission+admissionNo).Result()
	}
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lookup registrant: %w", err)
	}

	fields, err := s.client.HGetAll(ctx, redisKeyRegistrant+id).Result()
	if err != nil {
		return nil, fmt.Errorf("load registrant %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return registrantFromHash(fields)
}

func (s *RedisStore) Create(ctx context.Context, registrant *models.Registrant) error {
	id := registrant.ID.String()

	// Both lookup keys or neither: MSETNX is a no-op if either exists.
	claimed, err := s.client.MSetNX(ctx,
		redisKeyByEmail+registrant.Email, id,
		redisKeyByAdmission+registrant.AdmissionNo, id,
	).Result()
	if err != nil {
		return fmt.Errorf("claim registrant keys: %w", err)
	}
	if !claimed {
		return sentinel.ErrConflict
	}

	err = s.client.HSet(ctx, redisKeyRegistrant+id, map[string]any{
		"id":           id,
		"name":         registrant.Name,
		"admission_no": registrant.AdmissionNo,
		"branch":       registrant.Branch,
		"phone":        registrant.Phone,
		"email":        registrant.Email,
		"created_at":   registrant.CreatedAt.Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return fmt.Errorf("store registrant %s: %w", id, err)
	}
	return nil
}

func registrantFromHash(fields map[string]string) (*models.Registrant, error) {
	id, err := uuid.Parse(fields["id"])
	if err != nil {
		return nil, fmt.Errorf("parse registrant id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("parse registrant created_at: %w", err)
	}
	return &models.Registrant{
		ID:          id,
		Name:        fields["name"],
		AdmissionNo: fields["admission_no"],
		Branch:      fields["branch"],
		Phone:       fields["phone"],
		Email:       fields["email"],
		CreatedAt:   createdAt,
	}, nil
}
