package pages

import (
	"context"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/sdk/api"
	"golang.org/x/sync/errgroup"
)

// Dashboard holds the counters shown on the home screen. A counter that
// could not be fetched stays at zero.
type Dashboard struct {
	TotalUsers          int `json:"totalUsers"`
	TotalAccessories    int `json:"totalAccessories"`
	TotalTasks          int `json:"totalTasks"`
	TotalCompletedTasks int `json:"totalCompletedTasks"`
}

// LoadDashboard fetches all counters concurrently. Failures are logged and
// never keep the other counters from being shown.
func LoadDashboard(ctx context.Context, client api.Client) Dashboard {
	var (
		dashboard      Dashboard
		userStats      api.UserStats
		accessoryStats api.AccessoryStats
		taskStats      api.TaskStats
	)
	// None of these return an error, so one failure never stops the others.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if userStats, err = client.Users().Stats(ctx); err != nil {
			glog.Errorf("error fetching user stats: %s", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if accessoryStats, err =
			client.Accessories().Stats(ctx); err != nil {
			glog.Errorf("error fetching accessory stats: %s", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if taskStats, err = client.Tasks().Stats(ctx); err != nil {
			glog.Errorf("error fetching task stats: %s", err)
		}
		return nil
	})
	_ = g.Wait()
	dashboard.TotalUsers = userStats.TotalUsers
	dashboard.TotalAccessories = accessoryStats.TotalAccessories
	dashboard.TotalTasks = taskStats.TotalTasks
	dashboard.TotalCompletedTasks = taskStats.TotalCompletedTasks
	return dashboard
}
