package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeResumeExport       = "resume:export"
	TypeTemplateThumbnails = "template:thumbnails"
)

// ResumeExportPayload 描述一次导出所需的最小信息；简历内容由 worker 从数据库读取。
type ResumeExportPayload struct {
	ResumeID      uint   `json:"resume_id"`
	Format        string `json:"format"`
	Quality       string `json:"quality"`
	Filename      string `json:"filename"`
	CorrelationID string `json:"correlation_id"`
}

// NewResumeExportTask 构造导出任务。导出失败只上报一次，不做自动重试。
func NewResumeExportTask(p ResumeExportPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResumeExport, payload, asynq.MaxRetry(0)), nil
}

// TemplateThumbnailsPayload 为空时重新生成全部模板缩略图。
type TemplateThumbnailsPayload struct {
	TemplateIDs   []string `json:"template_ids,omitempty"`
	CorrelationID string   `json:"correlation_id"`
}

func NewTemplateThumbnailsTask(p TemplateThumbnailsPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTemplateThumbnails, payload, asynq.MaxRetry(1)), nil
}
