package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     string    `gorm:"size:255" json:"image"` // path relative to the media root, empty when absent
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}

// ImageURL is the public URL of the attached image.
func (p Post) ImageURL() string {
	if p.Image == "" {
		return ""
	}
	return "/media/" + p.Image
}

// HasGroup reports whether the post is tagged to a group.
func (p Post) HasGroup() bool {
	return p.GroupID != nil && p.Group != nil
}
