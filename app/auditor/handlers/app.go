package handlers

import (
	"content-gate/app/auditor/config"
	"content-gate/app/server/services/files"
	"context"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Auditor 由 files.Manager 实现，只读
type Auditor interface {
	Audit(ctx context.Context) (*files.Report, error)
}

type App struct {
	cfg     *config.Config
	l       *zap.Logger
	auditor Auditor

	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
	lock     sync.Mutex
}

func NewApp(cfg *config.Config, l *zap.Logger, auditor Auditor) *App {
	return &App{
		cfg:     cfg,
		l:       l,
		auditor: auditor,
	}
}

// Start 立即检查一次，之后按间隔循环
func (a *App) Start() {
	a.ticker = time.NewTicker(a.cfg.Interval)
	a.stopChan = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop()
}

func (a *App) loop() {
	defer close(a.done)

	a.audit()
	for {
		select {
		case <-a.ticker.C:
			a.l.Debug("audit loop")
			a.audit()
		case <-a.stopChan:
			a.l.Debug("stop audit loop")
			return
		}
	}
}

// Stop 等待正在进行的检查结束
func (a *App) Stop() {
	a.ticker.Stop()
	close(a.stopChan)
	<-a.done
}
