package enity

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	LocalClientConfKey = "local_client_conf"
	QuizStatsKey       = "quiz_stats"
)

type Config struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	K         string    `gorm:"column:k;uniqueIndex;size:64" json:"k"`
	V         string    `gorm:"column:v" json:"v"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Config) TableName() string {
	return "config"
}

func getConfig(db *gorm.DB, key string) (*Config, error) {
	item := &Config{}
	err := db.Where("k = ?", key).First(item).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func setConfig(db *gorm.DB, key, val string) error {
	item := &Config{K: key, V: val, UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v", "updated_at"}),
	}).Create(item).Error
}
