package model

import (
	"time"
)

// 枚举取值（前端下拉框同步维护）
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyExpert       = "Expert"

	DurationShort  = "Short-term"
	DurationMedium = "Medium"
	DurationLong   = "Long-term"
)

// Idea 毕业设计点子，roles/technologies/similar_projects 以 JSON 文本存储
type Idea struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Industry        string    `gorm:"size:50;index" json:"industry"`
	Type            string    `gorm:"size:50;index" json:"type"`
	Difficulty      string    `gorm:"size:20" json:"difficulty"`
	Duration        string    `gorm:"size:20" json:"duration"`
	Roles           string    `gorm:"type:text" json:"-"`
	Technologies    string    `gorm:"type:text" json:"-"`
	SimilarProjects string    `gorm:"type:text" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Idea) TableName() string {
	return "ideas"
}
