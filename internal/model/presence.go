package model

type HeartbeatRequest struct {
	Status string `json:"status"`
}

type HeartbeatResponse struct{}

type GetStatusesRequest struct {
	CommunityHandle string `json:"community_handle"`
}

type GetStatusesResponse struct {
	Statuses map[string]string `json:"statuses"`
}
