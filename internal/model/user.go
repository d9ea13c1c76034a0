package model

type ShortUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Status    string `json:"status"`
}

type User struct {
	ShortUser

	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	WeekStart string `json:"week_start,omitempty"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User

	// Providers lists the linked oauth2 services of the account.
	Providers []string `json:"providers"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User

	TotalPagesRead int64 `json:"total_pages_read"`
}

type UpdateUserRequest struct {
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
	Timezone       string `json:"timezone"`
	WeekStart      string `json:"week_start"`
}

type UpdateUserResponse struct{}
