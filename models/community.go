package models

import "time"

type CommunityPost struct {
	PostID   int        `gorm:"primaryKey;column:post_id" json:"post_id"`
	AuthorID int        `gorm:"column:author_id" json:"author_id"`
	Title    string     `gorm:"column:title" json:"title"`
	Content  string     `gorm:"column:content" json:"content"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Author  *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Replies []CommunityReply `gorm:"foreignKey:PostID" json:"replies,omitempty"`
}

type CommunityReply struct {
	ReplyID  int        `gorm:"primaryKey;column:reply_id" json:"reply_id"`
	PostID   int        `gorm:"column:post_id" json:"post_id"`
	AuthorID int        `gorm:"column:author_id" json:"author_id"`
	Content  string     `gorm:"column:content" json:"content"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}

func (CommunityReply) TableName() string {
	return "community_replies"
}
