package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/repo"
	"github.com/netly-app/netly/internal/service"
)

// MonthlyReportJob queues the portfolio and budget report emails for every
// user. Failures are isolated per user.
type MonthlyReportJob struct {
	users     *repo.UserRepo
	reporting *service.ReportingService
}

func NewMonthlyReportJob(users *repo.UserRepo, reporting *service.ReportingService) *MonthlyReportJob {
	return &MonthlyReportJob{users: users, reporting: reporting}
}

func (j *MonthlyReportJob) Name() string {
	return "monthly_report"
}

func (j *MonthlyReportJob) Run(ctx context.Context) error {
	users, err := j.users.ListAll(ctx)
	if err != nil {
		return err
	}
	var succeeded, failed int
	for _, user := range users {
		if err := j.reporting.SendPortfolioReport(ctx, user.ID); err != nil {
			failed++
			logutil.GetLogger(ctx).Error("queue portfolio report failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		if err := j.reporting.SendBudgetReport(ctx, user.ID); err != nil {
			failed++
			logutil.GetLogger(ctx).Error("queue budget report failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		succeeded++
	}
	logutil.GetLogger(ctx).Info("monthly report sweep done",
		zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	return nil
}
