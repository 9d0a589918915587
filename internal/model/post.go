package model

import "time"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp"`
	Upvotes   int       `json:"upvotes"`
	UserID    string    `json:"userId"`
	// UserName 匿名帖为 nil；不变式：IsAnonymous == true ⇔ UserName == nil
	UserName    *string `json:"userName"`
	IsAnonymous bool    `json:"isAnonymous"`
	IsFlagged   bool    `json:"isFlagged"`
	// UserUpvoted 当前查看者的本地投票开关，不是多用户的投票账本
	UserUpvoted bool `json:"userUpvoted,omitempty"`
}
