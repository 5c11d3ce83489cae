package services

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const objectNameSeparator = "-"

// NewObjectName 为上传对象生成全局唯一且可运维追溯的名字：
// <所有者>-<随机 token>-<毫秒时间戳>-<原始文件名>。
// 随机 token 保证并发调用下的唯一性，所有者与时间戳用于排障时定位来源。
func NewObjectName(ownerID uuid.UUID, originalFilename string) string {
	return buildObjectName(ownerID, uuid.NewString(), time.Now(), originalFilename)
}

func buildObjectName(ownerID uuid.UUID, token string, ts time.Time, filename string) string {
	return strings.Join([]string{
		ownerID.String(),
		token,
		strconv.FormatInt(ts.UnixMilli(), 10),
		sanitizeFilename(filename),
	}, objectNameSeparator)
}

// sanitizeFilename 把客户端给出的文件名压成安全的单段对象路径：
// 去掉目录前缀，非常规字符替换为下划线。
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
