package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/model"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookDomain interface {
	Create(context.Context, *model.CreateBookRequest) (*model.CreateBookResponse, error)
	Get(context.Context, *model.GetBookRequest) (*model.GetBookResponse, error)
	GetList(context.Context, *model.GetListBookRequest) (*model.GetListBookResponse, error)
	Delete(context.Context, *model.DeleteBookRequest) (*model.DeleteBookResponse, error)
}

type bookDomain struct {
	bookRepo repository.BookRepository
}

func NewBookDomain(bookRepo repository.BookRepository) *bookDomain {
	return &bookDomain{bookRepo: bookRepo}
}

func (d *bookDomain) Create(
	ctx context.Context, req *model.CreateBookRequest,
) (*model.CreateBookResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.TotalPages < 0 {
		return nil, errorx.New(errorx.BadRequest, "Total pages cannot be negative")
	}

	book := &entity.Book{
		Base:         entity.Base{ID: uuid.NewString()},
		Title:        strings.TrimSpace(req.Title),
		Author:       strings.TrimSpace(req.Author),
		CoverPicture: req.CoverPicture,
		TotalPages:   req.TotalPages,
		Genres:       req.Genres,
		CreatedBy:    xcontext.RequestUserID(ctx),
	}

	if err := d.bookRepo.Create(ctx, book); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create book: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBookResponse{Book: model.ConvertBook(book)}, nil
}

func (d *bookDomain) Get(
	ctx context.Context, req *model.GetBookRequest,
) (*model.GetBookResponse, error) {
	book, err := d.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found book")
		}

		xcontext.Logger(ctx).Errorf("Cannot get book: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetBookResponse(model.ConvertBook(book))
	return &resp, nil
}

func (d *bookDomain) GetList(
	ctx context.Context, req *model.GetListBookRequest,
) (*model.GetListBookResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	books, err := d.bookRepo.Search(ctx, repository.SearchBookFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search books: %v", err)
		return nil, errorx.Unknown
	}

	clientBooks := []model.Book{}
	for i := range books {
		clientBooks = append(clientBooks, model.ConvertBook(&books[i]))
	}

	return &model.GetListBookResponse{Books: clientBooks}, nil
}

func (d *bookDomain) Delete(
	ctx context.Context, req *model.DeleteBookRequest,
) (*model.DeleteBookResponse, error) {
	if _, err := d.bookRepo.GetByID(ctx, req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found book")
		}

		xcontext.Logger(ctx).Errorf("Cannot get book: %v", err)
		return nil, errorx.Unknown
	}

	// Shelf entries keep a denormalized title, so removing a catalog
	// record does not break existing shelves or history.
	if err := d.bookRepo.DeleteByID(ctx, req.BookID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete book: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteBookResponse{}, nil
}
