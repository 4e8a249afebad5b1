// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// MessageRole 消息角色常量
const (
	MessageRoleSystem    = "system"    // 系统提示词
	MessageRoleUser      = "user"      // 用户消息
	MessageRoleAssistant = "assistant" // AI 助手响应
)

// Message 消息模型
// 对应数据库表 messages
// 存储项目中的每一条对话消息，创建后不可修改
// 排序规则是上下文组装依赖的不变量：created_at 正序，相同时按 id 正序
type Message struct {
	// ID 消息唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// ProjectID 所属项目ID，外键关联 projects.id
	ProjectID int64 `gorm:"index;not null" json:"project_id"`

	// Role 消息角色
	// user: 用户发送的消息
	// assistant: AI 助手的响应
	// system: 系统消息
	Role string `gorm:"size:20;not null" json:"role"`

	// Content 消息内容
	// 使用 TEXT 类型存储，可以存储较长的内容
	Content string `gorm:"type:text;not null" json:"content"`

	// CreatedAt 消息创建时间
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Project 所属项目（多对一关系）
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
