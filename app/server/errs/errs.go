package errs

import "errors"

var (
	// 输入不合法（格式、枚举、大小与类型限制），不做任何修改
	ErrValidation = errors.New("validation failed")

	// 未登录或身份无效
	ErrUnauthorized = errors.New("authentication required")

	// 记录或文件不存在；不属于调用者的记录也归为这一类
	ErrNotFound = errors.New("not found")

	// 唯一约束冲突（例如登录名已存在）
	ErrConflict = errors.New("already exists")

	// 依赖（数据库、存储）不可用或出错
	ErrUnavailable = errors.New("dependency unavailable")
)
