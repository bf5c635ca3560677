package help

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/dashboard/internal/keys"
	"github.com/nhle/dashboard/internal/schedule"
)

func TestViewListsCommandsAndSchedule(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 60)
	assert.Contains(t, m.View(), ":speedtest")
	assert.NotContains(t, m.View(), "Schedule")

	m.SetJobs([]schedule.JobStatus{
		{Job: schedule.JobMetrics, Interval: 5 * time.Second, Fires: 3},
	})
	view := m.View()
	assert.Contains(t, view, "Schedule")
	assert.Contains(t, view, "metrics")
	assert.Contains(t, view, "(3 runs)")
}
