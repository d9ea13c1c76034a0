package model

type DailyPages struct {
	Date  string `json:"date"`
	Pages int    `json:"pages"`
}

type BookDailyPages struct {
	Date  string         `json:"date"`
	Pages int            `json:"pages"`
	Books map[string]int `json:"books"`
}

type BookInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type GetMyStatsRequest struct {
	Days int `json:"days"`
}

type GetMyStatsResponse struct {
	TotalPagesRead      int                 `json:"total_pages_read"`
	TotalBooksCompleted int                 `json:"total_books_completed"`
	PagesThisWeek       int                 `json:"pages_this_week"`
	PagesThisMonth      int                 `json:"pages_this_month"`
	DailyActivity       []DailyPages        `json:"daily_activity"`
	DailyActivityByBook []BookDailyPages    `json:"daily_activity_by_book"`
	BookMetadata        map[string]BookInfo `json:"book_metadata"`
	ReadingDays         []string            `json:"reading_days"`
	CurrentStreak       int                 `json:"current_streak"`
	LongestStreak       int                 `json:"longest_streak"`
}

type UserStatistic struct {
	User        ShortUser `json:"user"`
	Value       int       `json:"value"`
	CurrentRank int       `json:"current_rank"`
}

type GetLeaderBoardRequest struct {
	CommunityHandle string `json:"community_handle"`
	OrderedBy       string `json:"ordered_by"`
	Period          string `json:"period"`
	Offset          int    `json:"offset"`
	Limit           int    `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`

	// MyRank is the 1-based rank of the requesting user, 0 when the
	// user has no score in this period.
	MyRank uint64 `json:"my_rank"`
}
