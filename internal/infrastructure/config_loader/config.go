package loader

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration 包装 time.Duration，支持从 YAML/JSON 中的 "5s" 字符串或纳秒数值反序列化。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler。
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v))
	default:
		return fmt.Errorf("unsupported duration value %v", raw)
	}
	return nil
}

// AsDuration 返回标准库 time.Duration。
func (d Duration) AsDuration() time.Duration { return time.Duration(d) }

// Bootstrap 聚合服务启动所需的全部配置段。
type Bootstrap struct {
	Server    *ServerConfig    `json:"server"`
	Data      *DataConfig      `json:"data"`
	Storage   *StorageConfig   `json:"storage"`
	Reconcile *ReconcileConfig `json:"reconcile"`
}

// ServerConfig 描述对外暴露的服务端配置。
type ServerConfig struct {
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig 描述 HTTP Server 监听与超时配置。
// Timeout 是 Server 级兜底；三个细分超时作用于 Handler 内部的业务上下文，
// 上传链路明显长于普通命令，必须单独放宽。
type HTTPConfig struct {
	Network        string   `json:"network"`
	Addr           string   `json:"addr"`
	Timeout        Duration `json:"timeout"`
	CommandTimeout Duration `json:"command_timeout"`
	QueryTimeout   Duration `json:"query_timeout"`
	UploadTimeout  Duration `json:"upload_timeout"`
}

// DataConfig 描述持久化存储配置。
type DataConfig struct {
	Postgres PostgresConfig `json:"postgres"`
}

// PostgresConfig 描述 PostgreSQL 连接池配置。
type PostgresConfig struct {
	DSN                      string   `json:"dsn"`
	Schema                   string   `json:"schema"`
	MaxOpenConns             int32    `json:"max_open_conns"`
	MinOpenConns             int32    `json:"min_open_conns"`
	MaxConnLifetime          Duration `json:"max_conn_lifetime"`
	MaxConnIdleTime          Duration `json:"max_conn_idle_time"`
	HealthCheckPeriod        Duration `json:"health_check_period"`
	EnablePreparedStatements bool     `json:"enable_prepared_statements"`
}

// StorageConfig 描述远端对象存储（GCS）配置。
type StorageConfig struct {
	Bucket string `json:"bucket"`
	// Folder 是所有上传对象共享的逻辑目录。
	Folder string `json:"folder"`
	// ChunkSizeBytes 控制流式上传的单次传输块大小，用于约束大文件上传时的内存占用。
	ChunkSizeBytes int `json:"chunk_size_bytes"`
	// PublicBaseURL 用于拼接上传成功后的公开访问地址。
	PublicBaseURL string `json:"public_base_url"`
	// CredentialsFile 可选，指定 service account JSON 路径；为空时走默认凭据链。
	CredentialsFile string `json:"credentials_file"`
}

// ReconcileConfig 描述后台对账任务的节奏。
type ReconcileConfig struct {
	Interval Duration `json:"interval"`
	// GracePeriod 内新建的孤儿记录不处理，避免与进行中的上传竞争。
	GracePeriod Duration `json:"grace_period"`
}

// ServiceMetadata 保存服务标识信息，供日志组件使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}
