package files

import (
	"content-gate/app/server/errs"
	"content-gate/app/server/models"
	"content-gate/app/server/storage"
	"context"
	"errors"
	"fmt"
	"sort"
)

// Report 记录和数据之间的不一致，只用于报告，不做修复
type Report struct {
	Records      int
	Objects      int
	MissingBytes []models.StoredFile // 有记录没有数据
	Orphans      []string            // 有数据没有记录
}

func (r *Report) Consistent() bool {
	return len(r.MissingBytes) == 0 && len(r.Orphans) == 0
}

// Audit 对比存储和记录。
// 先列出数据再读记录：正在上传的文件（已写数据、未写记录）会被报告为孤儿，下一轮会消失；
// 列出之后才完成的上传和正在进行的删除会表现为有记录没有数据，所以这些记录逐个复查后才报告。
func (m *Manager) Audit(ctx context.Context) (*Report, error) {
	names, err := m.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage: %w", err)
	}

	records, err := m.files.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %w", err)
	}

	objects := make(map[string]struct{}, len(names))
	for _, name := range names {
		objects[name] = struct{}{}
	}

	report := &Report{
		Records: len(records),
		Objects: len(names),
	}
	for _, rec := range records {
		if _, ok := objects[rec.StorageName]; ok {
			delete(objects, rec.StorageName)
			continue
		}

		missing, err := m.stillMissing(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		if missing != nil {
			report.MissingBytes = append(report.MissingBytes, *missing)
		}
	}
	for name := range objects {
		report.Orphans = append(report.Orphans, name)
	}
	sort.Strings(report.Orphans)

	return report, nil
}

// stillMissing 重新读取记录并检查数据，记录还在且数据仍然不存在时返回记录
func (m *Manager) stillMissing(ctx context.Context, id uint) (*models.StoredFile, error) {
	rec, err := m.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// 已经被删除
			return nil, nil
		}
		return nil, fmt.Errorf("failed to recheck file record %d: %w", id, err)
	}

	body, _, err := m.storage.Open(ctx, rec.StorageName)
	if err == nil {
		body.Close()
		return nil, nil
	}
	if errors.Is(err, storage.ErrNotExist) {
		return rec, nil
	}
	return nil, fmt.Errorf("failed to recheck stored file %s: %w", rec.StorageName, err)
}
