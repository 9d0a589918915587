package model

import "time"

type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"` // 名称大小写不敏感唯一
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	MemberCount int       `json:"memberCount"`
}
