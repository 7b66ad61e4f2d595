package model

import "time"

type Lecturer struct {
	ID         uint   `gorm:"primaryKey"`
	LecturerID string `gorm:"column:lecturer_id"`
	Name       string
	Department string
	CreatedAt  time.Time
}

func (l Lecturer) TableName() string {
	return "lecturers"
}
