// Package storage keeps uploaded file bytes under system-generated names.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist 表示存储名下没有数据
var ErrNotExist = errors.New("object does not exist")

// ErrSizeMismatch 表示实际写入的字节数和声明的不一致
var ErrSizeMismatch = errors.New("size mismatch")

type Storage interface {
	// Put 写入全部数据，失败时不会留下可读的半个文件
	Put(ctx context.Context, name string, r io.Reader, size int64) error
	// Open 打开数据，调用者负责关闭
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	// Remove 删除数据，数据本来就不存在也视为成功
	Remove(ctx context.Context, name string) error
	// List 列出所有存储名
	List(ctx context.Context) ([]string, error)
}
