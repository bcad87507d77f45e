package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/drinkph/portal-go/config"
	"github.com/drinkph/portal-go/logger"
	"github.com/drinkph/portal-go/services"
	"github.com/drinkph/portal-go/workflow"
)

// Manager owns the background jobs: expired session purging and idle
// form-session eviction.
type Manager struct {
	scheduler gocron.Scheduler
	auth      *services.AuthService
	sessions  *workflow.Manager
}

func NewManager(auth *services.AuthService, sessions *workflow.Manager) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Manager{
		scheduler: s,
		auth:      auth,
		sessions:  sessions,
	}, nil
}

// Start registers all jobs and launches the scheduler.
func (m *Manager) Start() {
	m.registerJob("session_purger", config.PurgeInterval, m.purgeSessions)
	m.registerJob("idle_evictor", config.PurgeInterval, m.evictIdle)
	m.scheduler.Start()
	logger.Info("scheduler started")
}

func (m *Manager) registerJob(name string, interval time.Duration, task func()) {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("failed to register job %s: %v", name, err)
	}
}

func (m *Manager) purgeSessions() {
	count, err := m.auth.PurgeExpiredSessions()
	if err != nil {
		logger.Error("session purge failed: %v", err)
		return
	}
	if count > 0 {
		logger.Info("purged %d expired sessions", count)
	}
}

func (m *Manager) evictIdle() {
	if n := m.sessions.EvictIdle(config.IdleTimeout); n > 0 {
		logger.Info("evicted %d idle form sessions", n)
	}
}

func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("failed to shutdown scheduler: %v", err)
	}
	logger.Info("scheduler stopped")
}
