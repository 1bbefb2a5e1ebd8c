package uow

import (
	"context"
	"sync"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/db"
	dbuser "userapi/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const RESET_TOKEN = user.ResetToken("0123456789abcdef0123456789abcdef")

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestRollbackDiscardsChanges() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	_, err = uow.Users().Create(ctx, user.CreateUserInput{Email: "test@test.test", PasswordHash: "hash", CreatedAt: time.Now()})
	s.Require().Nil(err)
	s.Require().Nil(uow.Rollback(ctx))

	exists, err := dbuser.NewPgxRepository(s.pool).ExistsWithEmail(ctx, "test@test.test")
	s.Require().Nil(err)
	s.Require().False(exists)
}

func (s *testSuite) TestCommitPersistsChanges() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	_, err = uow.Users().Create(ctx, user.CreateUserInput{Email: "test@test.test", PasswordHash: "hash", CreatedAt: time.Now()})
	s.Require().Nil(err)
	s.Require().Nil(uow.Commit(ctx))
	s.Require().Nil(uow.Rollback(ctx))

	exists, err := dbuser.NewPgxRepository(s.pool).ExistsWithEmail(ctx, "test@test.test")
	s.Require().Nil(err)
	s.Require().True(exists)
}

func (s *testSuite) TestResetTokenIsConsumedOnce() {
	ctx := context.Background()
	repo := dbuser.NewPgxRepository(s.pool)
	created, err := repo.Create(ctx, user.CreateUserInput{Email: "test@test.test", PasswordHash: "hash", CreatedAt: time.Now()})
	s.Require().Nil(err)
	_, err = repo.Update(ctx, user.UpdateUserInput{
		ID:                  created.ID,
		DoResetTokenUpdate:  true,
		ResetToken:          c.NewOptional(RESET_TOKEN, true),
		ResetTokenExpiresAt: c.NewOptional(time.Now().Add(time.Hour), true),
	})
	s.Require().Nil(err)

	var wg sync.WaitGroup
	var lock sync.Mutex
	consumed := 0
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			uow, err := s.uow.Begin(ctx)
			if err != nil {
				return
			}
			defer uow.Rollback(ctx)

			u, err := uow.Users().GetByResetToken(ctx, RESET_TOKEN)
			if err != nil {
				return
			}
			_, err = uow.Users().Update(ctx, user.UpdateUserInput{ID: u.ID, DoResetTokenUpdate: true})
			if err != nil {
				return
			}
			if uow.Commit(ctx) == nil {
				lock.Lock()
				consumed++
				lock.Unlock()
			}
		}()
	}

	wg.Wait()
	s.Equal(1, consumed)
}
