package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 导出状态。
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 保存一份简历的内容、所选模板与章节顺序，以及最近一次导出的产物。
type Resume struct {
	gorm.Model
	Name         string                      `gorm:"size:255"`
	TemplateID   string                      `gorm:"size:64"`
	SectionOrder datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Data         datatypes.JSON              `gorm:"type:jsonb"`
	UserID       uint                        `gorm:"index"`
	User         User                        `gorm:"constraint:OnDelete:CASCADE"`

	ArtifactKey    string `gorm:"size:512"`
	ArtifactFormat string `gorm:"size:8"`
	ArtifactPages  int
	ArtifactName   string `gorm:"size:255"`
	Status         string `gorm:"size:32"`
}

// Asset 是用户上传的图片（目前只有头像）。
type Asset struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	ObjectKey   string `gorm:"uniqueIndex;size:255"`
	ContentType string `gorm:"size:64"`
	Size        int64
}

// TemplateThumbnail 记录内置模板缩略图在对象存储中的位置。
type TemplateThumbnail struct {
	TemplateID string `gorm:"primaryKey;size:64"`
	ObjectKey  string `gorm:"size:512"`
	UpdatedAt  int64  `gorm:"autoUpdateTime"`
}

// Models 返回需要迁移的全部模型。
func Models() []any {
	return []any{&User{}, &Resume{}, &Asset{}, &TemplateThumbnail{}}
}
