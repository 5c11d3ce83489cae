package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/services"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
)

// HandlerType 表示 Handler 的语义类别，用于选择超时策略。
type HandlerType int

const (
	// HandlerTypeDefault 表示未显式区分的 Handler。
	HandlerTypeDefault HandlerType = iota
	// HandlerTypeCommand 表示写模型命令 Handler。
	HandlerTypeCommand
	// HandlerTypeQuery 表示读模型查询 Handler。
	HandlerTypeQuery
	// HandlerTypeUpload 表示携带大负载的上传 Handler，允许远长于普通命令的耗时。
	HandlerTypeUpload
)

// HandlerTimeouts 聚合不同类型 Handler 的超时策略。
type HandlerTimeouts struct {
	Default time.Duration
	Command time.Duration
	Query   time.Duration
	Upload  time.Duration
}

const (
	fallbackDefaultTimeout = 5 * time.Second
	fallbackQueryTimeout   = 3 * time.Second
	fallbackUploadTimeout  = 10 * time.Minute
	headerAccountID        = "x-md-global-user-id"
)

// BaseHandler 提供公共的超时与请求方账号解析能力，供具体 Handler 内嵌复用。
type BaseHandler struct {
	timeouts HandlerTimeouts
}

// NewBaseHandler 构造基础 Handler，并为缺省值填充合理的回退策略。
func NewBaseHandler(timeouts HandlerTimeouts) *BaseHandler {
	if timeouts.Default <= 0 {
		if timeouts.Command > 0 {
			timeouts.Default = timeouts.Command
		} else {
			timeouts.Default = fallbackDefaultTimeout
		}
	}
	if timeouts.Command <= 0 {
		timeouts.Command = timeouts.Default
	}
	if timeouts.Query <= 0 {
		timeouts.Query = fallbackQueryTimeout
	}
	if timeouts.Upload <= 0 {
		timeouts.Upload = fallbackUploadTimeout
	}
	return &BaseHandler{timeouts: timeouts}
}

// WithTimeout 根据 Handler 类型包装上下文，返回绑定超时的新 Context 与取消函数。
func (h *BaseHandler) WithTimeout(ctx context.Context, kind HandlerType) (context.Context, context.CancelFunc) {
	if h == nil {
		return context.WithTimeout(ctx, fallbackDefaultTimeout)
	}
	var timeout time.Duration
	switch kind {
	case HandlerTypeCommand:
		timeout = h.timeouts.Command
	case HandlerTypeQuery:
		timeout = h.timeouts.Query
	case HandlerTypeUpload:
		timeout = h.timeouts.Upload
	default:
		timeout = h.timeouts.Default
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// AccountID 从请求头解析经上游网关认证的账号 ID。
// 认证本身在服务边界之外完成，这里只消费其结果。
func (h *BaseHandler) AccountID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(headerAccountID))
	if raw == "" {
		return uuid.Nil, kerrors.Unauthorized(services.ReasonAccountNotFound, "account identity required")
	}
	accountID, err := uuid.Parse(raw)
	if err != nil {
		// 无法解析的身份与缺失同样按未认证处理。
		return uuid.Nil, kerrors.Unauthorized(services.ReasonAccountNotFound, "invalid account identity").WithCause(err)
	}
	return accountID, nil
}
