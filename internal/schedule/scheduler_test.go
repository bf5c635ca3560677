package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextFire waits for a FireMsg or fails the test after timeout.
func nextFire(t *testing.T, s *Scheduler, timeout time.Duration) FireMsg {
	t.Helper()

	ch := make(chan FireMsg, 1)
	go func() {
		if msg, ok := s.Next()().(FireMsg); ok {
			ch <- msg
		}
	}()

	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("no job fired within %s", timeout)
		return FireMsg{}
	}
}

func TestJobFiresRepeatedly(t *testing.T) {
	s := New()
	s.Register(JobMetrics, 10*time.Millisecond, 0)
	require.NotNil(t, s.Start())
	defer s.Stop()

	for i := 0; i < 3; i++ {
		msg := nextFire(t, s, time.Second)
		assert.Equal(t, JobMetrics, msg.Job)
		assert.False(t, msg.Manual)
	}

	statuses := s.Statuses()
	require.Len(t, statuses, 1)
	assert.GreaterOrEqual(t, statuses[0].Fires, 3)
}

func TestInitialDelay(t *testing.T) {
	s := New()
	s.Register(JobSpeedTest, time.Hour, 10*time.Millisecond)
	s.Start()
	defer s.Stop()

	msg := nextFire(t, s, time.Second)
	assert.Equal(t, JobSpeedTest, msg.Job)
}

func TestTriggerFiresImmediately(t *testing.T) {
	s := New()
	s.Register(JobWeather, time.Hour, 0)
	s.Start()
	defer s.Stop()

	s.Trigger(JobWeather)
	msg := nextFire(t, s, time.Second)
	assert.Equal(t, JobWeather, msg.Job)
	assert.True(t, msg.Manual)

	s.Trigger("unknown")
}

func TestRearmReplacesInterval(t *testing.T) {
	s := New()
	s.Register(JobWeather, time.Hour, 0)
	s.Start()
	defer s.Stop()

	s.Rearm(JobWeather, 10*time.Millisecond)
	msg := nextFire(t, s, time.Second)
	assert.Equal(t, JobWeather, msg.Job)
	assert.False(t, msg.Manual)

	statuses := s.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, 10*time.Millisecond, statuses[0].Interval)
	assert.Equal(t, 1, statuses[0].Rearms)
}

func TestRegisterAfterStart(t *testing.T) {
	s := New()
	s.Start()
	defer s.Stop()

	s.Register(JobClock, 10*time.Millisecond, 0)
	msg := nextFire(t, s, time.Second)
	assert.Equal(t, JobClock, msg.Job)
}

func TestStopUnblocksNext(t *testing.T) {
	s := New()
	s.Register(JobBattery, time.Hour, 0)
	s.Start()

	done := make(chan any, 1)
	go func() { done <- s.Next()() }()

	s.Stop()
	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("Next did not return after Stop")
	}

	s.Stop()
	assert.Nil(t, s.Start())
}

func TestStatusesSorted(t *testing.T) {
	s := New()
	s.Register(JobWeather, time.Minute, 0)
	s.Register(JobClock, time.Second, 0)
	s.Register(JobMetrics, 5*time.Second, 0)

	var jobs []Job
	for _, st := range s.Statuses() {
		jobs = append(jobs, st.Job)
	}
	assert.Equal(t, []Job{JobClock, JobMetrics, JobWeather}, jobs)
}
