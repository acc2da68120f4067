package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
	"github.com/netly-app/netly/internal/service"
)

// WeeklySnapshotJob freezes every user's portfolio for the current date.
// One user failing does not stop the sweep; a snapshot that already exists
// for the date counts as a success.
type WeeklySnapshotJob struct {
	users     *repo.UserRepo
	snapshots *service.SnapshotService
}

func NewWeeklySnapshotJob(users *repo.UserRepo, snapshots *service.SnapshotService) *WeeklySnapshotJob {
	return &WeeklySnapshotJob{users: users, snapshots: snapshots}
}

func (j *WeeklySnapshotJob) Name() string {
	return "weekly_snapshot"
}

func (j *WeeklySnapshotJob) Run(ctx context.Context) error {
	users, err := j.users.ListAll(ctx)
	if err != nil {
		return err
	}
	date := timeutil.Today()
	var succeeded, failed int
	for _, user := range users {
		if _, err := j.snapshots.Create(ctx, user.ID, date); err != nil {
			if appErr.IsConflict(err) {
				succeeded++
				continue
			}
			failed++
			logutil.GetLogger(ctx).Error("snapshot user failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		succeeded++
	}
	logutil.GetLogger(ctx).Info("weekly snapshot sweep done",
		zap.String("date", date), zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	return nil
}
