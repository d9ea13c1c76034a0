package statistic

import (
	"fmt"

	"github.com/shelfmark/backend/internal/entity"
)

func redisKeyPagesLeaderBoard(communityID string, period entity.LeaderBoardPeriodType) string {
	return fmt.Sprintf("%s:pages:%s", communityID, period.Period())
}

func redisKeyBooksLeaderBoard(communityID string, period entity.LeaderBoardPeriodType) string {
	return fmt.Sprintf("%s:books:%s", communityID, period.Period())
}

func redisKeyLeaderBoard(orderedBy, communityID string, period entity.LeaderBoardPeriodType) (string, error) {
	switch orderedBy {
	case "pages":
		return redisKeyPagesLeaderBoard(communityID, period), nil
	case "books":
		return redisKeyBooksLeaderBoard(communityID, period), nil
	}

	return "", fmt.Errorf("expected ordered by pages or books, but got %s", orderedBy)
}
