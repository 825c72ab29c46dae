//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"regdesk/internal/registration/models"
	"regdesk/internal/registration/store"
	"regdesk/pkg/platform/sentinel"
	"regdesk/pkg/testutil/containers"
)

func newRegistrant(email, admissionNo string) *models.Registrant {
	return &models.Registrant{
		ID:          uuid.New(),
		Name:        "Asha Rao",
		AdmissionNo: admissionNo,
		Branch:      "CSE",
		Phone:       "9876543210",
		Email:       email,
		CreatedAt:   time.Now(),
	}
}

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "registrants"))
}

func (s *PostgresStoreSuite) registrantCount() int {
	var count int
	err := s.postgres.DB.QueryRow("SELECT COUNT(*) FROM registrants").Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	r := newRegistrant("asha@example.com", "123456")
	s.Require().NoError(s.store.Create(ctx, r))

	found, err := s.store.FindByEmailOrAdmissionNo(ctx, "asha@example.com", "000000")
	s.Require().NoError(err)
	s.Equal(r.ID, found.ID)
	s.Equal(r.Name, found.Name)

	byAdmission, err := s.store.FindByEmailOrAdmissionNo(ctx, "other@example.com", "123456")
	s.Require().NoError(err)
	s.Equal(r.ID, byAdmission.ID)

	_, err = s.store.FindByEmailOrAdmissionNo(ctx, "other@example.com", "000000")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUniqueConstraints() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newRegistrant("asha@example.com", "123456")))

	err := s.store.Create(ctx, newRegistrant("asha@example.com", "654321"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	err = s.store.Create(ctx, newRegistrant("ravi@example.com", "123456"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	s.Equal(1, s.registrantCount())
}

// TestConcurrentDuplicateInsert verifies that when many writers race on the
// same email and admission number, exactly one row lands and every loser
// observes a conflict rather than a second record.
func (s *PostgresStoreSuite) TestConcurrentDuplicateInsert() {
	ctx := context.Background()
	const writers = 25

	var successCount, conflictCount atomic.Int32
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			err := s.store.Create(ctx, newRegistrant("race@example.com", "111111"))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflictCount.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), successCount.Load(), "exactly one insert should win")
	s.Equal(int32(writers-1), conflictCount.Load(), "all others should conflict")
	s.Equal(1, s.registrantCount())
}
