// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// File 文件模型
// 对应数据库表 files
// 记录项目上传的参考文件的元信息，文件内容存储在磁盘
type File struct {
	// ID 文件唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// ProjectID 所属项目ID，外键关联 projects.id
	ProjectID int64 `gorm:"index;not null" json:"project_id"`

	// Filename 用户上传时的原始文件名
	Filename string `gorm:"size:255;not null" json:"filename"`

	// StoredName 磁盘上的存储文件名（UUID + 原始扩展名）
	// 避免文件名冲突和路径穿越
	StoredName string `gorm:"size:255;not null" json:"-"`

	// FilePath 文件在磁盘上的完整路径
	FilePath string `gorm:"size:500;not null" json:"-"`

	// FileSize 文件大小（字节）
	FileSize int64 `json:"file_size"`

	// ContentType 文件的 MIME 类型
	ContentType string `gorm:"size:100" json:"content_type"`

	// CreatedAt 上传时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Project 所属项目（多对一关系）
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// TableName 指定表名
func (File) TableName() string {
	return "files"
}
