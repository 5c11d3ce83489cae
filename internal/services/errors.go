package services

import "github.com/go-kratos/kratos/v2/errors"

// 错误 Reason 常量，进入对外错误负载的 reason 字段。
const (
	ReasonFileRequired    = "MEDIA_FILE_REQUIRED"
	ReasonKeywordsInvalid = "MEDIA_KEYWORDS_INVALID"
	ReasonVideoNotFound   = "MEDIA_VIDEO_NOT_FOUND"
	ReasonAccountNotFound = "MEDIA_ACCOUNT_NOT_FOUND"
	ReasonNotOwner        = "MEDIA_NOT_VIDEO_OWNER"
	ReasonUploadFailed    = "MEDIA_UPLOAD_FAILED"
	ReasonQueryTimeout    = "MEDIA_QUERY_TIMEOUT"
	ReasonPersistFailed   = "MEDIA_PERSIST_FAILED"
	ReasonVideoIDInvalid  = "MEDIA_VIDEO_ID_INVALID"
	ReasonRequestInvalid  = "MEDIA_REQUEST_INVALID"
)

// ErrVideoNotFound 是当视频未找到时返回的哨兵错误。
var ErrVideoNotFound = errors.NotFound(ReasonVideoNotFound, "video not found with this id")

// ErrAccountNotFound 表示操作方账号不存在；没有已确认的账号任何变更流程都不得继续。
var ErrAccountNotFound = errors.Unauthorized(ReasonAccountNotFound, "invalid account, login or signup first")

// ErrNotOwner 表示操作方不在视频的归属列表中。
var ErrNotOwner = errors.Forbidden(ReasonNotOwner, "only the owner can modify this video")

// ErrFileRequired 表示上传请求缺少文件负载。
var ErrFileRequired = errors.BadRequest(ReasonFileRequired, "please upload a file")

// ErrKeywordsInvalid 表示 keywords 字段不是合法的字符串序列。
var ErrKeywordsInvalid = errors.BadRequest(ReasonKeywordsInvalid, "keywords must be a JSON array of strings")
