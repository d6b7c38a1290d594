package cron

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/job"
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const (
	defaultDirtyRecountSpec = "0 */5 * * * *"
	defaultFullRecountSpec  = "@daily"
)

type Manager struct {
	engine         *cron.Cron
	cfg            config.CronConfig
	recountJob     *job.RecountJob
	fullRecountJob *job.FullRecountJob
}

func NewCronManager(cfg config.CronConfig, recountJob *job.RecountJob, fullRecountJob *job.FullRecountJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cfg:            cfg,
		recountJob:     recountJob,
		fullRecountJob: fullRecountJob,
	}
}

// Run 注册任务并启动调度
func (s *Manager) Run() error {
	if err := s.registerJobs(); err != nil {
		return err
	}
	s.Start()
	return nil
}

func (s *Manager) registerJobs() error {
	dirtySpec := s.cfg.DirtyRecount
	if dirtySpec == "" {
		dirtySpec = defaultDirtyRecountSpec
	}
	fullSpec := s.cfg.FullRecount
	if fullSpec == "" {
		fullSpec = defaultFullRecountSpec
	}

	if _, err := s.engine.AddJob(dirtySpec, s.recountJob); err != nil {
		return fmt.Errorf("register dirty recount %q: %w", dirtySpec, err)
	}
	if _, err := s.engine.AddJob(fullSpec, s.fullRecountJob); err != nil {
		return fmt.Errorf("register full recount %q: %w", fullSpec, err)
	}
	log.Info("cron jobs registered", "dirty_recount", dirtySpec, "full_recount", fullSpec)
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
