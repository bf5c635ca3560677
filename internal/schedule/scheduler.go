package schedule

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Job names a periodic dashboard refresh.
type Job string

const (
	JobClock     Job = "clock"
	JobWeather   Job = "weather"
	JobMetrics   Job = "metrics"
	JobSpeedTest Job = "speedtest"
	JobBattery   Job = "battery"
)

// Default cadences.
const (
	ClockInterval         = time.Second
	MetricsInterval       = 5 * time.Second
	SpeedTestInterval     = 10 * time.Minute
	SpeedTestInitialDelay = 30 * time.Second
	BatteryInterval       = time.Minute
)

// FireMsg is a tea.Msg sent each time a job is due.
type FireMsg struct {
	Job Job
	At  time.Time
	// Manual is set when the firing came from Trigger.
	Manual bool
}

// JobStatus describes a registered job.
type JobStatus struct {
	Job       Job
	Interval  time.Duration
	LastFired time.Time
	Fires     int
	// Rearms counts timer restarts after registration.
	Rearms int
}

type jobEntry struct {
	job          Job
	interval     time.Duration
	initialDelay time.Duration
	rearmCh      chan time.Duration
	triggerCh    chan struct{}
	status       JobStatus
}

// Scheduler runs one timer goroutine per registered job and delivers firings
// to the Bubble Tea runtime through Next.
type Scheduler struct {
	jobs    map[Job]*jobEntry
	fireCh  chan FireMsg
	stopCh  chan struct{}
	mu      sync.Mutex
	wg      sync.WaitGroup
	running bool
	stopped bool
	now     func() time.Time
}

// New creates an idle Scheduler.
func New() *Scheduler {
	return &Scheduler{
		jobs:   make(map[Job]*jobEntry),
		fireCh: make(chan FireMsg, 64),
		stopCh: make(chan struct{}),
		now:    time.Now,
	}
}

// Register adds a job firing every interval, the first time after
// initialDelay. A zero initialDelay waits one full interval. Registering an
// existing job rearms it instead.
func (s *Scheduler) Register(job Job, interval, initialDelay time.Duration) {
	s.mu.Lock()
	if _, ok := s.jobs[job]; ok {
		s.mu.Unlock()
		s.Rearm(job, interval)
		return
	}

	if initialDelay <= 0 {
		initialDelay = interval
	}
	entry := &jobEntry{
		job:          job,
		interval:     interval,
		initialDelay: initialDelay,
		rearmCh:      make(chan time.Duration, 1),
		triggerCh:    make(chan struct{}, 1),
		status:       JobStatus{Job: job, Interval: interval},
	}
	s.jobs[job] = entry
	running := s.running
	if running {
		s.wg.Add(1)
	}
	s.mu.Unlock()

	if running {
		go s.run(entry)
	}
}

// Start launches the job goroutines and returns the first Next command. A
// stopped Scheduler cannot be restarted.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	entries := make([]*jobEntry, 0, len(s.jobs))
	for _, e := range s.jobs {
		entries = append(entries, e)
	}
	s.wg.Add(len(entries))
	s.mu.Unlock()

	for _, e := range entries {
		go s.run(e)
	}

	return s.Next()
}

// Stop halts every job goroutine and waits for them to exit. Pending Next
// commands return nil.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.running = false
	s.stopped = true
	s.mu.Unlock()

	s.wg.Wait()
}

// Rearm replaces a job's interval and restarts its timer. The old timer is
// cancelled before the new one starts, so a job never runs on two cadences.
func (s *Scheduler) Rearm(job Job, interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[job]
	if !ok {
		return
	}
	entry.status.Interval = interval
	entry.status.Rearms++

	// Only the newest interval matters.
	select {
	case <-entry.rearmCh:
	default:
	}
	entry.rearmCh <- interval
}

// Trigger fires job immediately without touching its timer.
func (s *Scheduler) Trigger(job Job) {
	s.mu.Lock()
	entry, ok := s.jobs[job]
	s.mu.Unlock()
	if !ok {
		return
	}

	select {
	case entry.triggerCh <- struct{}{}:
	default:
		// A trigger is already pending.
	}
}

// Statuses reports every registered job, ordered by name.
func (s *Scheduler) Statuses() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, e := range s.jobs {
		out = append(out, e.status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

// Next returns a tea.Cmd that waits for the next firing. Call it again after
// handling each FireMsg to keep listening.
func (s *Scheduler) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.fireCh:
			return msg
		case <-s.stopCh:
			return nil
		}
	}
}

// run is the timer loop for a single job.
func (s *Scheduler) run(e *jobEntry) {
	defer s.wg.Done()

	timer := time.NewTimer(e.initialDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-timer.C:
			s.fire(e, false)
			timer.Reset(s.interval(e))
		case <-e.triggerCh:
			s.fire(e, true)
		case d := <-e.rearmCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			s.mu.Lock()
			e.interval = d
			s.mu.Unlock()
			timer.Reset(d)
			log.Debug().Str("job", string(e.job)).Dur("interval", d).Msg("job rearmed")
		}
	}
}

func (s *Scheduler) interval(e *jobEntry) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.interval
}

// fire records the firing and sends it without blocking.
func (s *Scheduler) fire(e *jobEntry, manual bool) {
	at := s.now()

	s.mu.Lock()
	e.status.LastFired = at
	e.status.Fires++
	s.mu.Unlock()

	select {
	case s.fireCh <- FireMsg{Job: e.job, At: at, Manual: manual}:
	default:
		// Drop if the UI is behind; the next tick catches up.
	}
}
