package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shelfmark/backend/internal/domain/statistic"
	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/enum"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserBookDomain interface {
	Add(context.Context, *model.AddShelfBookRequest) (*model.AddShelfBookResponse, error)
	GetMyShelf(context.Context, *model.GetMyShelfRequest) (*model.GetMyShelfResponse, error)
	UpdateProgress(context.Context, *model.UpdateProgressRequest) (*model.UpdateProgressResponse, error)
	Finish(context.Context, *model.FinishShelfBookRequest) (*model.FinishShelfBookResponse, error)
	Remove(context.Context, *model.RemoveShelfBookRequest) (*model.RemoveShelfBookResponse, error)
}

type userBookDomain struct {
	userBookRepo   repository.UserBookRepository
	bookRepo       repository.BookRepository
	readingLogRepo repository.ReadingLogRepository
	memberRepo     repository.MemberRepository
	leaderboard    statistic.Leaderboard
}

func NewUserBookDomain(
	userBookRepo repository.UserBookRepository,
	bookRepo repository.BookRepository,
	readingLogRepo repository.ReadingLogRepository,
	memberRepo repository.MemberRepository,
	leaderboard statistic.Leaderboard,
) *userBookDomain {
	return &userBookDomain{
		userBookRepo:   userBookRepo,
		bookRepo:       bookRepo,
		readingLogRepo: readingLogRepo,
		memberRepo:     memberRepo,
		leaderboard:    leaderboard,
	}
}

func (d *userBookDomain) Add(
	ctx context.Context, req *model.AddShelfBookRequest,
) (*model.AddShelfBookResponse, error) {
	book, err := d.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found book")
		}

		xcontext.Logger(ctx).Errorf("Cannot get book: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.userBookRepo.GetByUserAndBook(ctx, userID, book.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This book is already on your shelf")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing shelf book: %v", err)
		return nil, errorx.Unknown
	}

	status := entity.UserBookWant
	if req.Status != "" {
		status, err = enum.ToEnum[entity.UserBookStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid status: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	if status == entity.UserBookFinished {
		return nil, errorx.New(errorx.BadRequest, "Cannot add a book as finished")
	}

	userBook := &entity.UserBook{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: userID,
		BookID: book.ID,
		Title:  book.Title,
		Status: status,
	}

	if err := d.userBookRepo.Create(ctx, userBook); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create shelf book: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddShelfBookResponse{UserBook: model.ConvertUserBook(userBook, book)}, nil
}

func (d *userBookDomain) GetMyShelf(
	ctx context.Context, req *model.GetMyShelfRequest,
) (*model.GetMyShelfResponse, error) {
	filter := repository.UserBookFilter{UserID: xcontext.RequestUserID(ctx)}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.UserBookStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid status: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	userBooks, err := d.userBookRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get shelf: %v", err)
		return nil, errorx.Unknown
	}

	bookIDs := []string{}
	for _, ub := range userBooks {
		bookIDs = append(bookIDs, ub.BookID)
	}

	books, err := d.bookRepo.GetByIDs(ctx, bookIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get books: %v", err)
		return nil, errorx.Unknown
	}

	bookMap := map[string]*entity.Book{}
	for i := range books {
		bookMap[books[i].ID] = &books[i]
	}

	clientUserBooks := []model.UserBook{}
	for i := range userBooks {
		clientUserBooks = append(
			clientUserBooks, model.ConvertUserBook(&userBooks[i], bookMap[userBooks[i].BookID]))
	}

	return &model.GetMyShelfResponse{UserBooks: clientUserBooks}, nil
}

func (d *userBookDomain) UpdateProgress(
	ctx context.Context, req *model.UpdateProgressRequest,
) (*model.UpdateProgressResponse, error) {
	userBook, err := d.getOwnedUserBook(ctx, req.UserBookID)
	if err != nil {
		return nil, err
	}

	if userBook.Status == entity.UserBookFinished {
		return nil, errorx.New(errorx.Unavailable, "This book is already finished")
	}

	if req.CurrentPage < 0 {
		return nil, errorx.New(errorx.BadRequest, "Current page cannot be negative")
	}

	book, err := d.bookRepo.GetByID(ctx, userBook.BookID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get book: %v", err)
		return nil, errorx.Unknown
	}

	if book != nil && book.TotalPages > 0 && req.CurrentPage > book.TotalPages {
		return nil, errorx.New(errorx.BadRequest,
			"This book only has %d pages", book.TotalPages)
	}

	// Moving backwards rewrites the bookmark but recorded history keeps
	// only forward progress.
	pagesRead := req.CurrentPage - userBook.CurrentPage
	if pagesRead < 0 {
		pagesRead = 0
	}

	now := time.Now()
	if pagesRead > 0 {
		err = d.readingLogRepo.Create(ctx, &entity.ReadingLog{
			Base:       entity.Base{ID: uuid.NewString()},
			UserID:     userBook.UserID,
			UserBookID: userBook.ID,
			PagesRead:  pagesRead,
			RecordedAt: now,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create reading log: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.userBookRepo.UpdateCurrentPage(ctx, userBook.ID, req.CurrentPage); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update current page: %v", err)
		return nil, errorx.Unknown
	}

	userBook.CurrentPage = req.CurrentPage
	userBook.Status = entity.UserBookReading

	if pagesRead > 0 {
		d.applyProgressToCommunities(ctx, userBook.UserID, pagesRead, now, false)
	}

	return &model.UpdateProgressResponse{
		UserBook:  model.ConvertUserBook(userBook, nil),
		PagesRead: pagesRead,
	}, nil
}

func (d *userBookDomain) Finish(
	ctx context.Context, req *model.FinishShelfBookRequest,
) (*model.FinishShelfBookResponse, error) {
	userBook, err := d.getOwnedUserBook(ctx, req.UserBookID)
	if err != nil {
		return nil, err
	}

	if userBook.Status == entity.UserBookFinished {
		return nil, errorx.New(errorx.Unavailable, "This book is already finished")
	}

	now := time.Now()
	if err := d.userBookRepo.MarkFinished(ctx, userBook.ID, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark finished: %v", err)
		return nil, errorx.Unknown
	}

	d.applyProgressToCommunities(ctx, userBook.UserID, 0, now, true)

	return &model.FinishShelfBookResponse{}, nil
}

func (d *userBookDomain) Remove(
	ctx context.Context, req *model.RemoveShelfBookRequest,
) (*model.RemoveShelfBookResponse, error) {
	userBook, err := d.getOwnedUserBook(ctx, req.UserBookID)
	if err != nil {
		return nil, err
	}

	// Reading logs are kept. History and statistics survive shelf
	// cleanup, only the shelf entry goes away.
	if err := d.userBookRepo.DeleteByID(ctx, userBook.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete shelf book: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveShelfBookResponse{}, nil
}

func (d *userBookDomain) getOwnedUserBook(
	ctx context.Context, userBookID string,
) (*entity.UserBook, error) {
	userBook, err := d.userBookRepo.GetByID(ctx, userBookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found shelf book")
		}

		xcontext.Logger(ctx).Errorf("Cannot get shelf book: %v", err)
		return nil, errorx.Unknown
	}

	if userBook.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return userBook, nil
}

// applyProgressToCommunities bumps the member counters and leaderboards
// of every community the user belongs to. Failures here never fail the
// caller, the backfill path repairs redis on the next read.
func (d *userBookDomain) applyProgressToCommunities(
	ctx context.Context, userID string, pages int, at time.Time, finished bool,
) {
	members, err := d.memberRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get memberships: %v", err)
		return
	}

	for _, m := range members {
		err := d.memberRepo.IncreaseProgress(ctx, m.UserID, m.CommunityID, pages, finished)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update member counters: %v", err)
			continue
		}

		if pages > 0 {
			err = d.leaderboard.ChangePagesLeaderboard(ctx, int64(pages), at, userID, m.CommunityID)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot update pages leaderboard: %v", err)
			}
		}

		if finished {
			err = d.leaderboard.ChangeBooksLeaderboard(ctx, 1, at, userID, m.CommunityID)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot update books leaderboard: %v", err)
			}
		}
	}
}
