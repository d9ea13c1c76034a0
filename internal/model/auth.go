package model

// AccessToken is the object carried inside the JWT.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type OAuth2VerifyRequest struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
}

type OAuth2VerifyResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
