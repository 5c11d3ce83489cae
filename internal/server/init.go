// Package server 组装 HTTP 传输层与服务端可观测性组件。
package server

import "github.com/google/wire"

// ProviderSet bundles server providers for Wire.
var ProviderSet = wire.NewSet(NewHTTPServer, NewTelemetry)
