package usecase

import (
	"fmt"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// UsageService enforces the free-tier monthly analysis quota. A zero limit
// disables enforcement; an empty user key means an anonymous request which is
// never counted.
type UsageService struct {
	Repo  domain.UsageRepository
	Limit int
}

// NewUsageService constructs a UsageService with the given repo and limit.
func NewUsageService(r domain.UsageRepository, limit int) UsageService {
	return UsageService{Repo: r, Limit: limit}
}

// Status is the quota snapshot returned to clients.
type Status struct {
	Used       int    `json:"used"`
	Limit      int    `json:"limit"`
	CanAnalyze bool   `json:"can_analyze"`
	Message    string `json:"message"`
}

// Status reports the user's current-month usage against the limit.
func (s UsageService) Status(ctx domain.Context, user string) (Status, error) {
	if s.Limit <= 0 || user == "" {
		return Status{Used: 0, Limit: s.Limit, CanAnalyze: true, Message: "Unlimited analyses available."}, nil
	}
	used, err := s.Repo.Count(ctx, user)
	if err != nil {
		return Status{}, fmt.Errorf("op=usage.Status: %w", err)
	}
	st := Status{Used: used, Limit: s.Limit, CanAnalyze: used < s.Limit}
	if st.CanAnalyze {
		st.Message = fmt.Sprintf("%d of %d free analyses used this month.", used, s.Limit)
	} else {
		st.Message = fmt.Sprintf("Monthly limit of %d analyses reached. Resets next month.", s.Limit)
	}
	return st, nil
}

// Consume records one analysis for the user, returning ErrQuotaExceeded when
// the monthly limit is already spent. Anonymous users pass through untouched.
func (s UsageService) Consume(ctx domain.Context, user string) error {
	if s.Limit <= 0 || user == "" {
		return nil
	}
	used, err := s.Repo.Count(ctx, user)
	if err != nil {
		return fmt.Errorf("op=usage.Consume: %w", err)
	}
	if used >= s.Limit {
		return fmt.Errorf("%w: monthly limit of %d analyses reached", domain.ErrQuotaExceeded, s.Limit)
	}
	if _, err := s.Repo.Increment(ctx, user); err != nil {
		return fmt.Errorf("op=usage.Consume: %w", err)
	}
	return nil
}
