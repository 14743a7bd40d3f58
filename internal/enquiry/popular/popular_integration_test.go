//go:build integration

package popular

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	platformredis "enquiries/internal/platform/redis"
	id "enquiries/pkg/domain"
	"enquiries/pkg/testutil/containers"
)

type RecorderSuite struct {
	suite.Suite
	redis    *containers.RedisContainer
	recorder *Recorder
	ctx      context.Context
}

func TestRecorderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
	s.recorder = NewRecorder(&platformredis.Client{Client: s.redis.Client})
}

func (s *RecorderSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RecorderSuite) TestBumpsRankByUsage() {
	pothole := id.JobTypeID(uuid.New())
	lighting := id.JobTypeID(uuid.New())

	for range 3 {
		s.Require().NoError(s.recorder.BumpJobType(s.ctx, pothole))
	}
	s.Require().NoError(s.recorder.BumpJobType(s.ctx, lighting))

	top, err := s.recorder.TopJobTypes(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(pothole.String(), top[0].ID)
	s.EqualValues(3, top[0].Count)
	s.Equal(lighting.String(), top[1].ID)
	s.EqualValues(1, top[1].Count)
}

func (s *RecorderSuite) TestTopHonoursLimit() {
	for range 5 {
		s.Require().NoError(s.recorder.BumpContact(s.ctx, id.ContactID(uuid.New())))
	}

	top, err := s.recorder.TopContacts(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(top, 2)
}

func (s *RecorderSuite) TestKeysAreIndependent() {
	s.Require().NoError(s.recorder.BumpJobType(s.ctx, id.JobTypeID(uuid.New())))

	top, err := s.recorder.TopContacts(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(top)
}
