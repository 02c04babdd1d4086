package reports

import (
	"context"
	"fmt"
	"time"
)

type Service interface {
	Summary(ctx context.Context) (*SummaryResponse, error)
	ShowtimesForDate(ctx context.Context, date time.Time) ([]ShowtimeReportRow, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Summary(ctx context.Context) (*SummaryResponse, error) {
	summary, err := s.repo.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary report: %w", err)
	}
	return summary, nil
}

func (s *service) ShowtimesForDate(ctx context.Context, date time.Time) ([]ShowtimeReportRow, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.GetShowtimeRows(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to build showtime report: %w", err)
	}
	if rows == nil {
		rows = []ShowtimeReportRow{}
	}
	return rows, nil
}
