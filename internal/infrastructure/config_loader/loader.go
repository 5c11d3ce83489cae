// Package loader 负责加载并归一化服务的启动配置：YAML 配置文件、.env 文件与环境变量覆盖。
package loader

import (
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/bionicotaku/lingo-utils/gclog"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"
)

const (
	envConfPath       = "CONF_PATH"
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
	envDatabaseURL    = "DATABASE_URL"
	envPort           = "PORT"
	envGCSBucket      = "GCS_BUCKET"
)

var envFileNames = []string{".env.local", ".env"}

// Loader 聚合加载完成的配置与派生的服务元信息，供 Wire 注入使用。
type Loader struct {
	Bootstrap *Bootstrap
	Service   ServiceMetadata
	LoggerCfg gclog.Config
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// ParseConfPath 注册并解析 -conf 命令行参数。
func ParseConfPath(fs *flag.FlagSet, args []string) (string, error) {
	confPath := fs.String("conf", "", "config path, eg: -conf configs")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *confPath, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
// 优先级：显式传入路径 > CONF_PATH 环境变量 > 默认路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

// LoadBootstrap 从指定路径加载配置并构建 Loader。
//
// 流程：
//  1. 解析配置路径（应用回退规则）并加载 .env 文件
//  2. 通过 Kratos config 加载 YAML 并扫描到 Bootstrap
//  3. 应用环境变量覆盖与默认值，随后校验必填项
//  4. 推导服务元信息与日志配置
func LoadBootstrap(confPath, name, version string) (*Loader, func(), error) {
	resolved := ResolveConfPath(confPath)
	loadEnvFiles(resolved)

	c := config.New(config.WithSource(file.NewSource(resolved)))
	if err := c.Load(); err != nil {
		return nil, nil, BuildError{Stage: "load", Path: resolved, Err: err}
	}

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		_ = c.Close()
		return nil, nil, BuildError{Stage: "scan", Path: resolved, Err: err}
	}

	applyEnvOverrides(&bc)
	applyDefaults(&bc)
	if err := validate(&bc); err != nil {
		_ = c.Close()
		return nil, nil, BuildError{Stage: "validate", Path: resolved, Err: err}
	}

	meta := buildServiceMetadata(name, version)
	l := &Loader{
		Bootstrap: &bc,
		Service:   meta,
		LoggerCfg: meta.LoggerConfig(),
	}
	cleanup := func() { _ = c.Close() }
	return l, cleanup, nil
}

// LoggerConfig 将服务元信息转换为 gclog.Config。
func (m ServiceMetadata) LoggerConfig() gclog.Config {
	labels := map[string]string{}
	if m.InstanceID != "" {
		labels["service.id"] = m.InstanceID
	}
	return gclog.Config{
		Service:              m.Name,
		Version:              m.Version,
		Environment:          m.Environment,
		InstanceID:           m.InstanceID,
		StaticLabels:         labels,
		EnableSourceLocation: true,
	}
}

// loadEnvFiles 尝试加载配置目录与工作目录下的 .env 文件；文件不存在不报错。
func loadEnvFiles(confPath string) {
	dirs := []string{filepath.Dir(confPath), "."}
	for _, dir := range dirs {
		for _, name := range envFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			_ = godotenv.Load(path)
		}
	}
}

// applyEnvOverrides 应用环境变量覆盖配置文件中的特定字段。
//
// 支持的环境变量：
//   - DATABASE_URL: 覆盖 data.postgres.dsn
//   - PORT: 覆盖 server.http.addr 的端口部分（保留 host）
//   - GCS_BUCKET: 覆盖 storage.bucket
func applyEnvOverrides(bc *Bootstrap) {
	if dsn := os.Getenv(envDatabaseURL); dsn != "" {
		if bc.Data == nil {
			bc.Data = &DataConfig{}
		}
		bc.Data.Postgres.DSN = dsn
	}
	if port := os.Getenv(envPort); port != "" {
		if bc.Server == nil {
			bc.Server = &ServerConfig{}
		}
		host := "0.0.0.0"
		if bc.Server.HTTP.Addr != "" {
			if h, _, err := net.SplitHostPort(bc.Server.HTTP.Addr); err == nil && h != "" {
				host = h
			}
		}
		bc.Server.HTTP.Addr = net.JoinHostPort(host, port)
	}
	if bucket := os.Getenv(envGCSBucket); bucket != "" {
		if bc.Storage == nil {
			bc.Storage = &StorageConfig{}
		}
		bc.Storage.Bucket = bucket
	}
}

func applyDefaults(bc *Bootstrap) {
	if bc.Server == nil {
		bc.Server = &ServerConfig{}
	}
	if bc.Server.HTTP.Addr == "" {
		bc.Server.HTTP.Addr = defaultHTTPAddr
	}
	if bc.Storage == nil {
		bc.Storage = &StorageConfig{}
	}
	if bc.Storage.Folder == "" {
		bc.Storage.Folder = defaultStorageFolder
	}
	if bc.Storage.ChunkSizeBytes <= 0 {
		bc.Storage.ChunkSizeBytes = defaultChunkSizeBytes
	}
	if bc.Storage.PublicBaseURL == "" {
		bc.Storage.PublicBaseURL = defaultPublicBaseURL
	}
	if bc.Reconcile == nil {
		bc.Reconcile = &ReconcileConfig{}
	}
	if bc.Reconcile.Interval <= 0 {
		bc.Reconcile.Interval = mustDuration(defaultReconcileInterval)
	}
	if bc.Reconcile.GracePeriod <= 0 {
		bc.Reconcile.GracePeriod = mustDuration(defaultReconcileGrace)
	}
}

func validate(bc *Bootstrap) error {
	if bc.Data == nil || bc.Data.Postgres.DSN == "" {
		return fmt.Errorf("data.postgres.dsn is required (set DATABASE_URL)")
	}
	if bc.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required (set GCS_BUCKET)")
	}
	return nil
}

func buildServiceMetadata(name, version string) ServiceMetadata {
	if env := os.Getenv(envServiceName); env != "" {
		name = env
	}
	if name == "" {
		name = "lingo-services-media"
	}
	if env := os.Getenv(envServiceVersion); env != "" {
		version = env
	}
	if version == "" {
		version = "dev"
	}
	appEnv := os.Getenv(envAppEnv)
	if appEnv == "" {
		appEnv = defaultEnvironment
	}
	host, _ := os.Hostname()
	return ServiceMetadata{
		Name:        name,
		Version:     version,
		Environment: appEnv,
		InstanceID:  host,
	}
}

func mustDuration(raw string) Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid default duration %q: %v", raw, err))
	}
	return Duration(d)
}
