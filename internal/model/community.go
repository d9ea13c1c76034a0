package model

type Community struct {
	Handle       string `json:"handle"`
	DisplayName  string `json:"display_name"`
	Introduction string `json:"introduction"`
	LogoPicture  string `json:"logo_picture"`
	Followers    int    `json:"followers"`
	CreatedBy    string `json:"created_by"`
	CreatedAt    string `json:"created_at"`
}

type Member struct {
	User          ShortUser `json:"user"`
	TotalPages    int       `json:"total_pages"`
	BooksFinished int       `json:"books_finished"`
	JoinedAt      string    `json:"joined_at"`
}

type CreateCommunityRequest struct {
	Handle       string `json:"handle"`
	DisplayName  string `json:"display_name"`
	Introduction string `json:"introduction"`
	LogoPicture  string `json:"logo_picture"`
}

type CreateCommunityResponse struct {
	Handle string `json:"handle"`
}

type GetCommunityRequest struct {
	CommunityHandle string `json:"community_handle"`
}

type GetCommunityResponse Community

type GetListCommunityRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetListCommunityResponse struct {
	Communities []Community `json:"communities"`
}

type FollowCommunityRequest struct {
	CommunityHandle string `json:"community_handle"`
}

type FollowCommunityResponse struct{}

type UnfollowCommunityRequest struct {
	CommunityHandle string `json:"community_handle"`
}

type UnfollowCommunityResponse struct{}

type GetMyCommunitiesRequest struct{}

type GetMyCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type GetMembersRequest struct {
	CommunityHandle string `json:"community_handle"`
	Offset          int    `json:"offset"`
	Limit           int    `json:"limit"`
}

type GetMembersResponse struct {
	Members []Member `json:"members"`
}
