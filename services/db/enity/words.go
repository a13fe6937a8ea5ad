package enity

import "time"

type UntranslatableWord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Word      string    `gorm:"uniqueIndex;size:128" json:"word"`
	CreatedAt time.Time `json:"createdAt"`
}

type DailyWord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Day         time.Time `gorm:"uniqueIndex" json:"day"`
	Word        string    `gorm:"size:128" json:"word"`
	Translation string    `gorm:"size:256" json:"translation"`
}
