// Package views 将 Service 层返回的 VO 组装为对外响应信封。
package views

import "github.com/bionicotaku/lingo-services-media/internal/models/vo"

// Envelope 是所有成功响应共享的外层结构。
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// VideoPayload 是携带单个视频视图的响应数据体。
type VideoPayload struct {
	Video any `json:"video"`
}

const statusSuccess = "success"

// VideoUploaded 组装上传成功的响应。
func VideoUploaded(video *vo.VideoCreated) Envelope {
	return Envelope{
		Status:  statusSuccess,
		Message: "video has been uploaded",
		Data:    VideoPayload{Video: video},
	}
}

// VideoFetched 组装视频详情的响应。
func VideoFetched(video *vo.VideoDetail) Envelope {
	return Envelope{
		Status: statusSuccess,
		Data:   VideoPayload{Video: video},
	}
}

// VideoInfoUpdated 组装更新成功的响应。更新不回传实体，只有状态与消息。
func VideoInfoUpdated() Envelope {
	return Envelope{
		Status:  statusSuccess,
		Message: "video information has been updated",
	}
}
