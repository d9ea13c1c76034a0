package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/crypto"
)

var (
	User1 = entity.User{
		Base:      entity.Base{ID: "user1"},
		Name:      "alice",
		Email:     "alice@example.com",
		Role:      entity.UserRole,
		WeekStart: entity.WeekStartMonday,
	}

	User2 = entity.User{
		Base:      entity.Base{ID: "user2"},
		Name:      "bob",
		Email:     "bob@example.com",
		Role:      entity.UserRole,
		Timezone:  "America/New_York",
		WeekStart: entity.WeekStartSunday,
	}

	Admin = entity.User{
		Base:      entity.Base{ID: "admin"},
		Name:      "admin",
		Email:     "admin@example.com",
		Role:      entity.AdminRole,
		WeekStart: entity.WeekStartMonday,
	}

	Book1 = entity.Book{
		Base:       entity.Base{ID: "book1"},
		Title:      "The Left Hand of Darkness",
		Author:     "Ursula K. Le Guin",
		TotalPages: 304,
		CreatedBy:  "user1",
	}

	Book2 = entity.Book{
		Base:       entity.Base{ID: "book2"},
		Title:      "Snow Crash",
		Author:     "Neal Stephenson",
		TotalPages: 440,
		CreatedBy:  "user2",
	}

	Community1 = entity.Community{
		Base:        entity.Base{ID: "community1"},
		CreatedBy:   "user1",
		Handle:      "scifi_club",
		DisplayName: "Sci-Fi Club",
	}

	UserBook1 = entity.UserBook{
		Base:   entity.Base{ID: "userbook1"},
		UserID: "user1",
		BookID: "book1",
		Title:  "The Left Hand of Darkness",
		Status: entity.UserBookReading,
	}
)

// CreateFixture seeds the database behind ctx with a small, stable
// data set shared by the domain tests.
func CreateFixture(ctx context.Context) {
	insertUsers(ctx)
	insertBooks(ctx)
	insertCommunities(ctx)
}

const Password = "password123"

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	hash, err := crypto.HashPassword(Password)
	if err != nil {
		panic(err)
	}

	for _, user := range []entity.User{User1, User2, Admin} {
		user.PasswordHash = sql.NullString{Valid: true, String: hash}
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func insertBooks(ctx context.Context) {
	bookRepo := repository.NewBookRepository()
	for _, book := range []entity.Book{Book1, Book2} {
		book := book
		if err := bookRepo.Create(ctx, &book); err != nil {
			panic(err)
		}
	}

	userBookRepo := repository.NewUserBookRepository()
	userBook := UserBook1
	if err := userBookRepo.Create(ctx, &userBook); err != nil {
		panic(err)
	}
}

func insertCommunities(ctx context.Context) {
	communityRepo := repository.NewCommunityRepository()
	community := Community1
	if err := communityRepo.Create(ctx, &community); err != nil {
		panic(err)
	}

	memberRepo := repository.NewMemberRepository()
	err := memberRepo.Create(ctx, &entity.Member{
		UserID:      User1.ID,
		CommunityID: Community1.ID,
	})
	if err != nil {
		panic(err)
	}

	if err := communityRepo.IncreaseFollowers(ctx, Community1.ID, 1); err != nil {
		panic(err)
	}
}

// InsertReadingLog records one progress event directly, bypassing the
// domain layer, for tests that need history at a chosen instant.
func InsertReadingLog(ctx context.Context, userID, userBookID string, pages int, at time.Time) {
	err := repository.NewReadingLogRepository().Create(ctx, &entity.ReadingLog{
		Base:       entity.Base{ID: crypto.GenerateRandomAlphabet(12)},
		UserID:     userID,
		UserBookID: userBookID,
		PagesRead:  pages,
		RecordedAt: at,
	})
	if err != nil {
		panic(err)
	}
}
