package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shelfmark/backend/internal/domain/statistic"
	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetMyStats(context.Context, *model.GetMyStatsRequest) (*model.GetMyStatsResponse, error)
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	userRepo       repository.UserRepository
	userBookRepo   repository.UserBookRepository
	readingLogRepo repository.ReadingLogRepository
	communityRepo  repository.CommunityRepository
	leaderboard    statistic.Leaderboard
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	userBookRepo repository.UserBookRepository,
	readingLogRepo repository.ReadingLogRepository,
	communityRepo repository.CommunityRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{
		userRepo:       userRepo,
		userBookRepo:   userBookRepo,
		readingLogRepo: readingLogRepo,
		communityRepo:  communityRepo,
		leaderboard:    leaderboard,
	}
}

func (d *statisticDomain) GetMyStats(
	ctx context.Context, req *model.GetMyStatsRequest,
) (*model.GetMyStatsResponse, error) {
	statsCfg := xcontext.Configs(ctx).Stats
	days := req.Days
	if days == 0 {
		days = statsCfg.DefaultWindowDays
	}

	if days < 0 || days > statsCfg.MaxWindowDays {
		return nil, errorx.New(errorx.BadRequest,
			"Days must be between 1 and %d", statsCfg.MaxWindowDays)
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	logs, err := d.readingLogRepo.GetList(ctx, repository.ReadingLogFilter{UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reading logs: %v", err)
		return nil, errorx.Unknown
	}

	userBooks, err := d.userBookRepo.GetList(ctx, repository.UserBookFilter{UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get shelf: %v", err)
		return nil, errorx.Unknown
	}

	titleByUserBook := map[string]string{}
	for _, ub := range userBooks {
		titleByUserBook[ub.ID] = ub.Title
	}

	events := make([]statistic.ProgressEvent, 0, len(logs))
	for _, log := range logs {
		events = append(events, statistic.ProgressEvent{
			ID:         log.ID,
			UserBookID: log.UserBookID,
			BookTitle:  titleByUserBook[log.UserBookID],
			PagesRead:  log.PagesRead,
			RecordedAt: log.RecordedAt,
		})
	}

	completed := []statistic.CompletedBook{}
	for _, ub := range userBooks {
		if ub.Status != entity.UserBookFinished {
			continue
		}

		completed = append(completed, statistic.CompletedBook{
			ID:          ub.ID,
			Title:       ub.Title,
			CompletedAt: ub.CompletedAt.Time,
		})
	}

	stats := statistic.Aggregate(events, completed, statistic.Options{
		Now:       time.Now(),
		Timezone:  user.Timezone,
		WeekStart: user.WeekStart,
		Days:      days,
	})

	return convertDerivedStats(stats), nil
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	period, err := statistic.ToPeriod(req.Period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Period must be week or month")
	}

	records, err := d.leaderboard.GetLeaderBoard(
		ctx, community.ID, req.OrderedBy, period, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	userIDs := []string{}
	for _, r := range records {
		userIDs = append(userIDs, r.User.ID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	for i := range records {
		records[i].User = model.ConvertShortUser(userMap[records[i].User.ID], "")
	}

	myRank, err := d.leaderboard.GetRank(
		ctx, xcontext.RequestUserID(ctx), community.ID, req.OrderedBy, period)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderBoardResponse{
		LeaderBoard: records,
		MyRank:      myRank,
	}, nil
}

func convertDerivedStats(stats statistic.DerivedStats) *model.GetMyStatsResponse {
	daily := make([]model.DailyPages, 0, len(stats.DailyActivity))
	for _, day := range stats.DailyActivity {
		daily = append(daily, model.DailyPages{Date: day.Date, Pages: day.Pages})
	}

	dailyByBook := make([]model.BookDailyPages, 0, len(stats.DailyActivityByBook))
	for _, day := range stats.DailyActivityByBook {
		dailyByBook = append(dailyByBook, model.BookDailyPages{
			Date:  day.Date,
			Pages: day.Pages,
			Books: day.Books,
		})
	}

	metadata := map[string]model.BookInfo{}
	for id, book := range stats.BookMetadata {
		metadata[id] = model.BookInfo{ID: book.ID, Title: book.Title}
	}

	return &model.GetMyStatsResponse{
		TotalPagesRead:      stats.TotalPagesRead,
		TotalBooksCompleted: stats.TotalBooksCompleted,
		PagesThisWeek:       stats.PagesThisWeek,
		PagesThisMonth:      stats.PagesThisMonth,
		DailyActivity:       daily,
		DailyActivityByBook: dailyByBook,
		BookMetadata:        metadata,
		ReadingDays:         stats.ReadingDays,
		CurrentStreak:       stats.CurrentStreak,
		LongestStreak:       stats.LongestStreak,
	}
}
