// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Project 项目模型
// 对应数据库表 projects
// 每个项目是一个独立的聊天机器人配置：系统提示词 + 对话历史 + 参考文件
type Project struct {
	// ID 项目唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Name 项目显示名称
	Name string `gorm:"size:100;not null" json:"name"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Prompts 项目的提示词历史（一对多关系）
	// 删除项目时级联删除
	Prompts []Prompt `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"prompts,omitempty"`

	// Messages 项目的对话消息（一对多关系）
	Messages []Message `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`

	// Files 项目的参考文件（一对多关系）
	Files []File `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}
