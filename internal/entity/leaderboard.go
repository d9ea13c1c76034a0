package entity

import (
	"fmt"
	"time"
)

// LeaderBoardPeriodType buckets leaderboard scores into a time window.
// Period() is stable for every instant inside the window and is used as
// part of the redis key.
type LeaderBoardPeriodType interface {
	Period() string
	Start() time.Time
	End() time.Time
}

type LeaderBoardPeriodWeek struct {
	current time.Time
}

func NewLeaderBoardPeriodWeek(current time.Time) LeaderBoardPeriodWeek {
	return LeaderBoardPeriodWeek{current: current}
}

func (p LeaderBoardPeriodWeek) Period() string {
	year, week := p.current.ISOWeek()
	return fmt.Sprintf("%d:%d", week, year)
}

func (p LeaderBoardPeriodWeek) Start() time.Time {
	d := p.current.UTC()
	offset := (int(d.Weekday()) + 6) % 7 // ISO week begins on Monday
	d = d.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (p LeaderBoardPeriodWeek) End() time.Time {
	return p.Start().AddDate(0, 0, 7)
}

type LeaderBoardPeriodMonth struct {
	current time.Time
}

func NewLeaderBoardPeriodMonth(current time.Time) LeaderBoardPeriodMonth {
	return LeaderBoardPeriodMonth{current: current}
}

func (p LeaderBoardPeriodMonth) Period() string {
	return fmt.Sprintf("%s:%d", p.current.Month(), p.current.Year())
}

func (p LeaderBoardPeriodMonth) Start() time.Time {
	d := p.current.UTC()
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (p LeaderBoardPeriodMonth) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}
