package service

import (
	"context"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/analytics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/util"
	"golang.org/x/sync/errgroup"
)

// Overview bundles the figures shown on the summary screen
type Overview struct {
	Totals  domain.Totals          `json:"totals"`
	Trends  *domain.TrendReport    `json:"trends"`
	Budgets []domain.BudgetStatus  `json:"budgets"`
	Alerts  []domain.BudgetAlert   `json:"alerts"`
	Goals   []domain.SavingsGoal   `json:"goals"`
	Summary domain.CategorySummary `json:"-"`
}

// AnalyticsService computes summaries, trends and insights over stored transactions
type AnalyticsService struct {
	transactionRepo domain.TransactionRepository
	budgetService   *BudgetService
	savingsService  *SavingsService
	now             func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(transactionRepo domain.TransactionRepository, budgetService *BudgetService, savingsService *SavingsService) *AnalyticsService {
	return &AnalyticsService{
		transactionRepo: transactionRepo,
		budgetService:   budgetService,
		savingsService:  savingsService,
		now:             time.Now,
	}
}

// Summary returns per-category totals of transactions matching kind
func (s *AnalyticsService) Summary(kind domain.TransactionType) (domain.CategorySummary, error) {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return domain.CategorySummary{}, err
	}
	return analytics.Summarize(txs, kind), nil
}

// Monthly returns per-calendar-month totals, merging years
func (s *AnalyticsService) Monthly(kind domain.TransactionType) (domain.MonthlySummary, error) {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return domain.MonthlySummary{}, err
	}
	return analytics.ByMonth(txs, kind)
}

// Periods returns per "YYYY-MM" totals
func (s *AnalyticsService) Periods(kind domain.TransactionType) (domain.PeriodSummary, error) {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return domain.PeriodSummary{}, err
	}
	return analytics.ByPeriod(txs, kind)
}

// Totals returns overall income, expenses and net
func (s *AnalyticsService) Totals() (domain.Totals, error) {
	txs, err := s.transactionRepo.List()
	if err != nil {
		return domain.Totals{}, err
	}
	return analytics.ComputeTotals(txs), nil
}

// Trends compares expense spending in the given month with the month before it
func (s *AnalyticsService) Trends(year, month int) (*domain.TrendReport, error) {
	if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidInput
	}
	txs, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}
	return buildTrendReport(txs, year, month)
}

// CurrentTrends compares this month with last month
func (s *AnalyticsService) CurrentTrends() (*domain.TrendReport, error) {
	year, month := util.YearMonth(s.now())
	return s.Trends(year, month)
}

func buildTrendReport(txs []domain.Transaction, year, month int) (*domain.TrendReport, error) {
	prevYear, prevMonth := util.PreviousMonth(year, month)

	currentTxs, err := analytics.InPeriod(txs, year, month)
	if err != nil {
		return nil, err
	}
	previousTxs, err := analytics.InPeriod(txs, prevYear, prevMonth)
	if err != nil {
		return nil, err
	}

	current := analytics.Summarize(currentTxs, domain.TransactionTypeExpense)
	previous := analytics.Summarize(previousTxs, domain.TransactionTypeExpense)
	trend := analytics.Trends(current, previous)

	report := &domain.TrendReport{
		Period:         analytics.PeriodKey(year, month),
		PreviousPeriod: analytics.PeriodKey(prevYear, prevMonth),
		Current:        current,
		Previous:       previous,
		Trend:          trend,
		Insights:       analytics.Insights(trend, current),
	}
	if overall, ok := analytics.OverallInsight(current.Total(), previous.Total()); ok {
		report.Overall = &overall
	}
	return report, nil
}

// Overview gathers totals, trends, budget status and goals concurrently.
// Loads not yet started when ctx is done are skipped and ctx's error is returned.
func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txs, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Totals:  analytics.ComputeTotals(txs),
		Summary: analytics.Summarize(txs, domain.TransactionTypeExpense),
	}
	year, month := util.YearMonth(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		report, err := buildTrendReport(txs, year, month)
		if err != nil {
			return err
		}
		overview.Trends = report
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		status, err := s.budgetService.Status()
		if err != nil {
			return err
		}
		overview.Budgets = status
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		alerts, err := s.budgetService.Alerts()
		if err != nil {
			return err
		}
		overview.Alerts = alerts
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		goals, err := s.savingsService.Goals()
		if err != nil {
			return err
		}
		overview.Goals = goals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
