package domain

import (
	"testing"

	"github.com/shelfmark/backend/internal/domain/statistic"
	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/testutil"
	"github.com/shelfmark/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newTestUserBookDomain() *userBookDomain {
	readingLogRepo := repository.NewReadingLogRepository()
	return NewUserBookDomain(
		repository.NewUserBookRepository(),
		repository.NewBookRepository(),
		readingLogRepo,
		repository.NewMemberRepository(),
		statistic.New(readingLogRepo, testutil.NewMockRedisClient()),
	)
}

func Test_userBookDomain_Add(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	domain := newTestUserBookDomain()

	resp, err := domain.Add(ctx, &model.AddShelfBookRequest{BookID: testutil.Book1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Book1.Title, resp.UserBook.Title)
	require.Equal(t, "want", resp.UserBook.Status)

	// The same book cannot be added twice.
	_, err = domain.Add(ctx, &model.AddShelfBookRequest{BookID: testutil.Book1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)

	_, err = domain.Add(ctx, &model.AddShelfBookRequest{BookID: "missing"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_userBookDomain_UpdateProgress(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestUserBookDomain()

	resp, err := domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 50, resp.PagesRead)
	require.Equal(t, 50, resp.UserBook.CurrentPage)

	var logs []entity.ReadingLog
	err = xcontext.DB(ctx).Find(&logs).Error
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, 50, logs[0].PagesRead)
	require.Equal(t, testutil.User1.ID, logs[0].UserID)

	// Member counters of the communities the reader belongs to follow.
	member, err := repository.NewMemberRepository().Get(
		ctx, testutil.User1.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, 50, member.TotalPages)
	require.Equal(t, 0, member.BooksFinished)

	// Moving the bookmark backwards records no pages.
	resp, err = domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: 30,
	})
	require.NoError(t, err)
	require.Equal(t, 0, resp.PagesRead)
	require.Equal(t, 30, resp.UserBook.CurrentPage)

	err = xcontext.DB(ctx).Find(&logs).Error
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func Test_userBookDomain_UpdateProgress_notOwner(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixture(ctx)
	domain := newTestUserBookDomain()

	_, err := domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: 10,
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_userBookDomain_UpdateProgress_outOfRange(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestUserBookDomain()

	_, err := domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: -1,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: testutil.Book1.TotalPages + 1,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_userBookDomain_Finish(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestUserBookDomain()

	_, err := domain.Finish(ctx, &model.FinishShelfBookRequest{UserBookID: testutil.UserBook1.ID})
	require.NoError(t, err)

	userBook, err := repository.NewUserBookRepository().GetByID(ctx, testutil.UserBook1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.UserBookFinished, userBook.Status)
	require.True(t, userBook.CompletedAt.Valid)

	member, err := repository.NewMemberRepository().Get(
		ctx, testutil.User1.ID, testutil.Community1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, member.BooksFinished)

	// Finishing twice is rejected, progress is frozen too.
	_, err = domain.Finish(ctx, &model.FinishShelfBookRequest{UserBookID: testutil.UserBook1.ID})
	require.Error(t, err)

	_, err = domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: 500,
	})
	require.Error(t, err)
}

func Test_userBookDomain_Remove(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixture(ctx)
	domain := newTestUserBookDomain()

	_, err := domain.UpdateProgress(ctx, &model.UpdateProgressRequest{
		UserBookID:  testutil.UserBook1.ID,
		CurrentPage: 20,
	})
	require.NoError(t, err)

	_, err = domain.Remove(ctx, &model.RemoveShelfBookRequest{UserBookID: testutil.UserBook1.ID})
	require.NoError(t, err)

	_, err = repository.NewUserBookRepository().GetByID(ctx, testutil.UserBook1.ID)
	require.Error(t, err)

	// History survives shelf cleanup.
	var logs []entity.ReadingLog
	err = xcontext.DB(ctx).Find(&logs).Error
	require.NoError(t, err)
	require.Len(t, logs, 1)
}
