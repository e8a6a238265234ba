package manager

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kasuboski/rawz/pkg/download"
	"github.com/kasuboski/rawz/pkg/logger"
	"github.com/kasuboski/rawz/pkg/release"
	"go.uber.org/zap"
)

const (
	DefaultCap          = 3
	DefaultPollInterval = time.Second
)

var ErrEmptyRoot = errors.New("destination root is empty")

// Manager submits an episode group to a backend and supervises the transfers until they finish
type Manager struct {
	backend       download.Backend
	cap           int
	pollInterval  time.Duration
	taskTimeout   time.Duration
	directoryName string
	progress      func([]download.Transfer)
	now           func() time.Time
}

type Option func(*Manager)

// WithCap sets how many releases of one episode are submitted
func WithCap(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.cap = n
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

// WithTaskTimeout bounds how long a submitted task is supervised. Zero waits forever.
func WithTaskTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.taskTimeout = d
		}
	}
}

// WithDirectoryName overrides the show directory under the destination root
func WithDirectoryName(name string) Option {
	return func(m *Manager) {
		m.directoryName = name
	}
}

// WithProgress receives the active transfers on every poll
func WithProgress(fn func([]download.Transfer)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.progress = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func New(backend download.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend:      backend,
		cap:          DefaultCap,
		pollInterval: DefaultPollInterval,
		now:          time.Now,
	}
	m.progress = m.logProgress

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Run submits every release in the group and blocks until supervision ends.
// Per-release failures are reported in the Report, not returned.
func (m *Manager) Run(ctx context.Context, group release.EpisodeGroup, root string) (Report, error) {
	if root == "" {
		return Report{}, ErrEmptyRoot
	}

	runID := uuid.NewString()
	ctx = logger.WithFields(ctx, "run", runID, "show", group.Show())
	log := logger.FromCtx(ctx)

	dir := m.directoryName
	if dir == "" {
		dir = group.Show()
	}

	entries := group.Entries()
	tasks := make([]*Task, 0, len(entries))
	submittedPerEpisode := make(map[string]int)
	for _, entry := range entries {
		task := newTask(entry, filepath.Join(root, dir, entry.ID.Key()))
		tasks = append(tasks, task)
		m.submit(ctx, task, submittedPerEpisode)
	}

	var supervised []*Task
	for _, t := range tasks {
		if t.State() == Submitted {
			supervised = append(supervised, t)
		}
	}

	log.Infow("submitted releases", "submitted", len(supervised), "total", len(tasks))

	if len(supervised) > 0 {
		if err := m.backend.ForceStartAll(ctx); err != nil {
			log.Warnw("failed to force start transfers", zap.Error(err))
		}

		m.supervise(ctx, supervised)
	}

	report := Report{
		RunID:   runID,
		Show:    group.Show(),
		Tag:     group.Tag(),
		Results: make([]TaskResult, 0, len(tasks)),
	}
	for _, t := range tasks {
		report.Results = append(report.Results, t.result())
	}

	return report, nil
}

func (m *Manager) submit(ctx context.Context, task *Task, submittedPerEpisode map[string]int) {
	key := task.Episode.Key()
	log := logger.FromCtx(ctx, "episode", key, "release", task.Release.RemoteName)

	if task.Release.Seeders == 0 {
		log.Debug("skipping release without seeders")
		m.setState(ctx, task, Unavailable)
		return
	}

	if submittedPerEpisode[key] >= m.cap {
		log.Debugw("episode cap reached", "cap", m.cap)
		m.setState(ctx, task, Capped)
		return
	}

	handle, err := m.backend.Submit(ctx, task.Release.Locator, task.Destination)
	if err != nil {
		log.Warnw("failed to submit release", zap.Error(err))
		task.Err = &SubmissionError{Release: task.Release, Err: err}
		m.setState(ctx, task, SubmissionFailed)
		return
	}

	task.Handle = handle
	task.SubmittedAt = m.now()
	submittedPerEpisode[key]++
	m.setState(ctx, task, Submitted)
	log.Infow("submitted release", "handle", handle.ID, "destination", task.Destination)
}

func (m *Manager) supervise(ctx context.Context, tasks []*Task) {
	log := logger.FromCtx(ctx)

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for _, t := range tasks {
				if t.State() != Submitted {
					continue
				}
				t.Err = ctx.Err()
				m.setState(ctx, t, Canceled)
			}
			log.Infow("supervision canceled", zap.Error(ctx.Err()))
			return
		case <-ticker.C:
		}

		if m.poll(ctx, tasks) {
			return
		}
	}
}

// poll updates task states from one listing and reports whether supervision is over
func (m *Manager) poll(ctx context.Context, tasks []*Task) bool {
	log := logger.FromCtx(ctx)

	active, err := m.backend.ListActive(ctx)
	if err != nil {
		log.Warnw("failed to list active transfers", zap.Error(err))
		return false
	}

	m.progress(active)

	activeIDs := make(map[string]struct{}, len(active))
	for _, t := range active {
		activeIDs[t.ID] = struct{}{}
	}

	now := m.now()
	remaining := 0
	for _, t := range tasks {
		if t.State() != Submitted {
			continue
		}

		if _, ok := activeIDs[t.Handle.ID]; !ok {
			m.setState(ctx, t, Completed)
			log.Infow("transfer finished", "episode", t.Episode.String(), "handle", t.Handle.ID)
			continue
		}

		if m.taskTimeout > 0 && now.Sub(t.SubmittedAt) >= m.taskTimeout {
			t.Err = &TimeoutError{Handle: t.Handle, Timeout: m.taskTimeout}
			m.setState(ctx, t, TimedOut)
			log.Warnw("transfer timed out", "episode", t.Episode.String(), "handle", t.Handle.ID)
			continue
		}

		remaining++
	}

	return len(active) == 0 || remaining == 0
}

// setState moves t to s, logging a rejected transition
func (m *Manager) setState(ctx context.Context, t *Task, s State) {
	if err := t.transition(s); err != nil {
		logger.FromCtx(ctx).Errorw("task transition rejected", "episode", t.Episode.String(), zap.Error(err))
	}
}

func (m *Manager) logProgress(transfers []download.Transfer) {
	log := logger.Get()
	for _, t := range transfers {
		log.Infow("downloading", "name", t.Name, "progress", t.Progress)
	}
}
