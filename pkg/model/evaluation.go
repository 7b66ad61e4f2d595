package model

import "time"

type Evaluation struct {
	ID         uint   `gorm:"primaryKey"`
	UserIndex  string `gorm:"column:user_index"`
	LecturerID string `gorm:"column:lecturer_id"`
	Rating     int
	Comments   *string
	CreatedAt  time.Time
}

func (e Evaluation) TableName() string {
	return "evaluations"
}
