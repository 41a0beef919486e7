package constants

import "time"

// 上传的 PDF 文件
const (
	UploadDirDefault        = "/data/content-gate/uploads/"
	UploadMaxSizeDefault    = 10 * 1024 * 1024 // 10 MiB
	UploadAllowedType       = "application/pdf"
	UploadStorageNameSuffix = ".pdf"
	UploadFormField         = "pdf"
	UploadFormOverhead      = 1024 * 1024 // multipart 边界和其他字段
	UploadRollbackTimeout   = 30 * time.Second
)
