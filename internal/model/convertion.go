package model

import (
	"time"

	"github.com/shelfmark/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User, status string) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.ProfilePicture,
		Status:    status,
	}
}

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	converted := User{
		ShortUser: ConvertShortUser(user, ""),
		Timezone:  user.Timezone,
		WeekStart: string(user.WeekStart),
	}

	if includeSensitive {
		converted.Email = user.Email
		converted.Role = user.Role
	}

	return converted
}

func ConvertBook(book *entity.Book) Book {
	if book == nil {
		return Book{}
	}

	return Book{
		ID:           book.ID,
		Title:        book.Title,
		Author:       book.Author,
		CoverPicture: book.CoverPicture,
		TotalPages:   book.TotalPages,
		Genres:       book.Genres,
		CreatedBy:    book.CreatedBy,
		CreatedAt:    book.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertUserBook(userBook *entity.UserBook, book *entity.Book) UserBook {
	if userBook == nil {
		return UserBook{}
	}

	converted := UserBook{
		ID:          userBook.ID,
		BookID:      userBook.BookID,
		Title:       userBook.Title,
		Status:      string(userBook.Status),
		CurrentPage: userBook.CurrentPage,
	}

	if book != nil {
		converted.Author = book.Author
		converted.CoverPicture = book.CoverPicture
		converted.TotalPages = book.TotalPages
	}

	if userBook.CompletedAt.Valid {
		converted.CompletedAt = userBook.CompletedAt.Time.Format(DefaultTimeLayout)
	}

	return converted
}

func ConvertCommunity(community *entity.Community) Community {
	if community == nil {
		return Community{}
	}

	return Community{
		Handle:       community.Handle,
		DisplayName:  community.DisplayName,
		Introduction: string(community.Introduction),
		LogoPicture:  community.LogoPicture,
		Followers:    community.Followers,
		CreatedBy:    community.CreatedBy,
		CreatedAt:    community.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertMember(member *entity.Member, user *entity.User, status string) Member {
	if member == nil {
		return Member{}
	}

	return Member{
		User:          ConvertShortUser(user, status),
		TotalPages:    member.TotalPages,
		BooksFinished: member.BooksFinished,
		JoinedAt:      member.CreatedAt.Format(DefaultTimeLayout),
	}
}
