package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ReportStoreSuite struct {
	suite.Suite
	db    *gorm.DB
	store *ReportStore
	ctx   context.Context
}

func (s *ReportStoreSuite) SetupTest() {
	s.db = testutil.SetupTestDB(s.T())
	s.store = NewReportStore(s.db)
	s.ctx = context.Background()
}

func TestReportStoreSuite(t *testing.T) {
	suite.Run(t, new(ReportStoreSuite))
}

func (s *ReportStoreSuite) seed(targetType models.TargetType, targetID int64, status models.ReportStatus) *models.Report {
	return testutil.CreateReport(s.T(), s.db, 1, targetType, targetID, status)
}

func (s *ReportStoreSuite) TestGet() {
	r := s.seed(models.TargetPost, 1, models.StatusPending)

	got, err := s.store.Get(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(r.ID, got.ID)

	_, err = s.store.Get(s.ctx, r.ID+100)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReportStoreSuite) TestListFilters() {
	a := s.seed(models.TargetPost, 1, models.StatusPending)
	s.seed(models.TargetPost, 2, models.StatusResolved)
	c := s.seed(models.TargetUser, 1, models.StatusPending)

	byStatus, err := s.store.List(s.ctx, ReportFilter{Status: models.StatusPending})
	s.Require().NoError(err)
	s.Len(byStatus, 2)

	byTarget, err := s.store.List(s.ctx, ReportFilter{TargetType: models.TargetPost, TargetID: 1})
	s.Require().NoError(err)
	s.Require().Len(byTarget, 1)
	s.Equal(a.ID, byTarget[0].ID)

	all, err := s.store.List(s.ctx, ReportFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	// newest first
	s.Equal(c.ID, all[0].ID)
}

func (s *ReportStoreSuite) TestCount() {
	s.seed(models.TargetOpportunity, 4, models.StatusPending)
	s.seed(models.TargetOpportunity, 4, models.StatusPending)
	s.seed(models.TargetOpportunity, 4, models.StatusDismissed)

	n, err := s.store.Count(s.ctx, ReportFilter{TargetType: models.TargetOpportunity, TargetID: 4, Status: models.StatusPending})
	s.Require().NoError(err)
	s.Equal(int64(2), n)
}

func (s *ReportStoreSuite) TestPendingCountsAtLeast() {
	s.seed(models.TargetPost, 5, models.StatusPending)
	s.seed(models.TargetPost, 5, models.StatusPending)
	s.seed(models.TargetPost, 6, models.StatusPending)
	s.seed(models.TargetPost, 6, models.StatusReviewed)
	s.seed(models.TargetPost, 7, models.StatusPending)
	s.seed(models.TargetPost, 7, models.StatusPending)
	s.seed(models.TargetPost, 7, models.StatusPending)

	rows, err := s.store.PendingCountsAtLeast(s.ctx, models.TargetPost, 2)
	s.Require().NoError(err)
	s.Equal([]TargetCount{{TargetID: 7, ReportCount: 3}, {TargetID: 5, ReportCount: 2}}, rows)
}

func (s *ReportStoreSuite) TestUpdateStatusOnlyMovesListedStatuses() {
	pending := s.seed(models.TargetPost, 1, models.StatusPending)
	resolved := s.seed(models.TargetPost, 1, models.StatusResolved)
	other := s.seed(models.TargetPost, 2, models.StatusPending)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	admin := int64(9)
	n, err := s.store.UpdateStatus(s.ctx, ForTarget(models.TargetPost, 1), StatusUpdate{
		From:    models.OpenStatuses,
		To:      models.StatusResolved,
		Action:  models.ActionContentRemoved,
		AdminID: &admin,
		At:      at,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	got := testutil.ReloadReport(s.T(), s.db, pending.ID)
	s.Equal(models.StatusResolved, got.Status)
	s.Equal(models.ActionContentRemoved, got.ActionTaken)
	s.Require().NotNil(got.ResolvedAt)
	s.True(got.ResolvedAt.Equal(at))
	s.True(got.UpdatedAt.Equal(at))

	s.Equal(models.ActionNone, testutil.ReloadReport(s.T(), s.db, resolved.ID).ActionTaken)
	s.Equal(models.StatusPending, testutil.ReloadReport(s.T(), s.db, other.ID).Status)
}

func (s *ReportStoreSuite) TestUpdateStatusByID() {
	a := s.seed(models.TargetUser, 3, models.StatusPending)
	b := s.seed(models.TargetUser, 3, models.StatusPending)

	n, err := s.store.UpdateStatus(s.ctx, ByID(b.ID), StatusUpdate{
		From: []models.ReportStatus{models.StatusPending},
		To:   models.StatusDismissed,
		At:   time.Now(),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), n)
	s.Equal(models.StatusPending, testutil.ReloadReport(s.T(), s.db, a.ID).Status)

	dismissed := testutil.ReloadReport(s.T(), s.db, b.ID)
	s.Equal(models.StatusDismissed, dismissed.Status)
	s.Nil(dismissed.ResolvedAt)
	s.Nil(dismissed.ResolvedByAdminID)
}

func (s *ReportStoreSuite) TestWritesJoinContextTransaction() {
	r := s.seed(models.TargetPost, 1, models.StatusPending)
	rollback := errors.New("rollback")

	err := database.InTx(s.ctx, s.db, func(ctx context.Context) error {
		_, err := s.store.UpdateStatus(ctx, ByID(r.ID), StatusUpdate{
			From: models.OpenStatuses,
			To:   models.StatusDismissed,
			At:   time.Now(),
		})
		s.Require().NoError(err)

		inside, err := s.store.Get(ctx, r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusDismissed, inside.Status)
		return rollback
	})
	s.ErrorIs(err, rollback)
	s.Equal(models.StatusPending, testutil.ReloadReport(s.T(), s.db, r.ID).Status)
}

func TestReportStoreWrapsDriverErrors(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	store := NewReportStore(db)
	boom := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT").WillReturnError(boom)
	_, err := store.Get(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery("SELECT").WillReturnError(boom)
	_, err = store.PendingCountsAtLeast(context.Background(), models.TargetPost, 1)
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	assert.NoError(t, mock.ExpectationsWereMet())
}
