package service

import (
	"context"
	"time"

	"waterbuddy/internal/logger"
	"waterbuddy/internal/models"
	"waterbuddy/internal/repository"
)

// HistoryService aggregates the last N daily ledger entries for charting.
type HistoryService struct {
	ledger repository.Ledger
	log    *logger.Logger
	now    func() time.Time
}

func NewHistoryService(ledger repository.Ledger, log *logger.Logger) *HistoryService {
	return &HistoryService{
		ledger: ledger,
		log:    log,
		now:    time.Now,
	}
}

// LastDays returns exactly n consecutive calendar dates ending today,
// oldest first. Each day is one independent read; a day whose read fails
// charts as 0 without failing the rest.
func (s *HistoryService) LastDays(ctx context.Context, uid string, n int) []models.DayIntake {
	if n < 1 {
		n = 1
	}
	today := s.now().UTC()

	days := make([]models.DayIntake, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		ml, found, err := s.ledger.GetIntake(ctx, uid, date)
		if err != nil {
			if s.log != nil {
				s.log.Warnw("history_read_unavailable", "uid", uid, "date", date, "err", err)
			}
			ml = 0
		} else if !found {
			ml = 0
		}
		days = append(days, models.DayIntake{Date: date, IntakeML: ml})
	}
	return days
}
