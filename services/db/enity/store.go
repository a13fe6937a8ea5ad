package enity

import (
	"encoding/json"
	"time"

	"github.com/beastars1/lingvo-widget/conf"
	"github.com/beastars1/lingvo-widget/services/quiz"
	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidClientConf = errors.New("invalid local client config")

type Store struct {
	db *gorm.DB
}

var _ quiz.Recorder = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Config{}, &UntranslatableWord{}, &DailyWord{})
}

// LoadClientConf returns the stored client config. A missing row is
// seeded with def.
func (s *Store) LoadClientConf(def conf.Client) (conf.Client, error) {
	item, err := getConfig(s.db, LocalClientConfKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, s.SaveClientConf(def)
	}
	if err != nil {
		return def, err
	}
	cfg := conf.Client{}
	if err = json.Unmarshal([]byte(item.V), &cfg); err != nil || conf.ValidClientConf(&cfg) != nil {
		return def, ErrInvalidClientConf
	}
	return cfg, nil
}

func (s *Store) SaveClientConf(cfg conf.Client) error {
	if err := conf.ValidClientConf(&cfg); err != nil {
		return errors.Wrap(ErrInvalidClientConf, err.Error())
	}
	bts, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return setConfig(s.db, LocalClientConfKey, string(bts))
}

func (s *Store) LoadStats() (quiz.Stats, error) {
	stats := quiz.Stats{}
	item, err := getConfig(s.db, QuizStatsKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	err = json.Unmarshal([]byte(item.V), &stats)
	return stats, err
}

func (s *Store) SaveStats(stats quiz.Stats) error {
	bts, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return setConfig(s.db, QuizStatsKey, string(bts))
}

func (s *Store) AddUntranslatable(word string) error {
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&UntranslatableWord{Word: word, CreatedAt: time.Now()}).Error
}

func (s *Store) ListUntranslatable() ([]string, error) {
	var list []string
	err := s.db.Model(&UntranslatableWord{}).Order("id").Pluck("word", &list).Error
	return list, err
}

// DailyWordOf returns the word cached for the day containing t.
func (s *Store) DailyWordOf(t time.Time) (*DailyWord, error) {
	item := &DailyWord{}
	err := s.db.Where("day = ?", now.With(t).BeginningOfDay()).First(item).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) SaveDailyWord(t time.Time, word, translation string) error {
	item := &DailyWord{
		Day:         now.With(t).BeginningOfDay(),
		Word:        word,
		Translation: translation,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"word", "translation"}),
	}).Create(item).Error
}
