// Package dto 定义 HTTP 层的请求载荷结构。
package dto

// UpdateVideoRequest 是更新视频元信息的 JSON 请求体。
// 四个字段整体覆盖现有值，调用方需要提交完整信息。
type UpdateVideoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
}
