package service

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

var hydrationTips = []string{
	"Keep a filled water bottle visible on your desk.",
	"Drink a glass (250 ml) after every bathroom break.",
	"Start your day with a glass of water.",
	"Add lemon or cucumber for natural flavor.",
	"Set small hourly reminders and sip regularly.",
	"Carry a lightweight bottle whenever you go outside.",
	"Refill your bottle every time it becomes half empty.",
	"Use a bottle with measurement markings to track progress.",
	"Drink water before meals to stay hydrated and support digestion.",
}

// TipsService rotates the tip of the day shown on the dashboard.
type TipsService struct {
	mu  sync.Mutex
	rng *rand.Rand
	idx int
}

func NewTipsService() *TipsService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &TipsService{
		rng: rng,
		idx: rng.Intn(len(hydrationTips)),
	}
}

// Current returns the tip without rotating.
func (s *TipsService) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hydrationTips[s.idx]
}

// Next picks a different random tip and returns it.
func (s *TipsService) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(hydrationTips) > 1 {
		next := s.rng.Intn(len(hydrationTips) - 1)
		if next >= s.idx {
			next++
		}
		s.idx = next
	}
	return hydrationTips[s.idx]
}

// Run rotates the tip at the given interval until ctx is canceled.
func (s *TipsService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Next()
		}
	}
}
