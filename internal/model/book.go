package model

type Book struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	CoverPicture string `json:"cover_picture"`
	TotalPages   int      `json:"total_pages"`
	Genres       []string `json:"genres"`
	CreatedBy    string   `json:"created_by"`
	CreatedAt    string   `json:"created_at"`
}

type CreateBookRequest struct {
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	CoverPicture string   `json:"cover_picture"`
	TotalPages   int      `json:"total_pages"`
	Genres       []string `json:"genres"`
}

type CreateBookResponse struct {
	Book Book `json:"book"`
}

type GetBookRequest struct {
	BookID string `json:"book_id"`
}

type GetBookResponse Book

type GetListBookRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetListBookResponse struct {
	Books []Book `json:"books"`
}

type DeleteBookRequest struct {
	BookID string `json:"book_id"`
}

type DeleteBookResponse struct{}
