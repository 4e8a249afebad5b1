// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Prompt 系统提示词模型
// 对应数据库表 prompts
// 提示词只增不改：每次编辑都新建一条记录，形成历史
// "当前提示词" 定义为最新创建的那条（created_at 倒序，相同时按 id 倒序）
type Prompt struct {
	// ID 提示词唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// ProjectID 所属项目ID，外键关联 projects.id
	ProjectID int64 `gorm:"index;not null" json:"project_id"`

	// Text 提示词内容
	Text string `gorm:"type:text;not null" json:"text"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Project 所属项目（多对一关系）
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// TableName 指定表名
func (Prompt) TableName() string {
	return "prompts"
}
