package model

type UserBook struct {
	ID           string `json:"id"`
	BookID       string `json:"book_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	CoverPicture string `json:"cover_picture"`
	TotalPages   int    `json:"total_pages"`
	Status       string `json:"status"`
	CurrentPage  int    `json:"current_page"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

type AddShelfBookRequest struct {
	BookID string `json:"book_id"`
	Status string `json:"status"`
}

type AddShelfBookResponse struct {
	UserBook UserBook `json:"user_book"`
}

type GetMyShelfRequest struct {
	Status string `json:"status"`
}

type GetMyShelfResponse struct {
	UserBooks []UserBook `json:"user_books"`
}

type UpdateProgressRequest struct {
	UserBookID  string `json:"user_book_id"`
	CurrentPage int    `json:"current_page"`
}

type UpdateProgressResponse struct {
	UserBook  UserBook `json:"user_book"`
	PagesRead int      `json:"pages_read"`
}

type FinishShelfBookRequest struct {
	UserBookID string `json:"user_book_id"`
}

type FinishShelfBookResponse struct{}

type RemoveShelfBookRequest struct {
	UserBookID string `json:"user_book_id"`
}

type RemoveShelfBookResponse struct{}
