package handlers

import (
	"context"
	"go.uber.org/zap"
)

func (a *App) audit() {
	// 设置并发锁，上一轮还没结束时跳过这一轮
	if !a.lock.TryLock() {
		a.l.Warn("previous audit still running, skipped")
		return
	}
	defer a.lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeout)
	defer cancel()

	report, err := a.auditor.Audit(ctx)
	if err != nil {
		a.l.Error("failed to audit storage", zap.Error(err))
		return
	}

	if report.Consistent() {
		a.l.Info("storage is consistent", zap.Int("records", report.Records), zap.Int("objects", report.Objects))
		return
	}

	// 只报告，不修复
	for _, file := range report.MissingBytes {
		a.l.Warn("record without stored bytes",
			zap.Uint("fileId", file.ID),
			zap.Uint("userId", file.UserID),
			zap.String("storageName", file.StorageName),
		)
	}
	for _, name := range report.Orphans {
		a.l.Warn("stored bytes without record", zap.String("storageName", name))
	}

	a.l.Warn("storage is inconsistent",
		zap.Int("records", report.Records),
		zap.Int("objects", report.Objects),
		zap.Int("missingBytes", len(report.MissingBytes)),
		zap.Int("orphans", len(report.Orphans)),
	)
}
