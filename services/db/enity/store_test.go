package enity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/beastars1/lingvo-widget/conf"
	"github.com/beastars1/lingvo-widget/services/quiz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormLogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return NewStore(db), db
}

var testClientConf = conf.Client{
	LangPair:             "en-lt",
	QuizOptionsCount:     4,
	NextQuestionDelaySec: 2,
	MaxSkips:             20,
	MaxOptionRounds:      10,
}

func TestClientConf(t *testing.T) {
	s, db := newTestStore(t)

	cfg, err := s.LoadClientConf(testClientConf)
	require.NoError(t, err)
	assert.Equal(t, testClientConf, cfg)

	updated := testClientConf
	updated.QuizOptionsCount = 6
	require.NoError(t, s.SaveClientConf(updated))
	cfg, err = s.LoadClientConf(testClientConf)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.QuizOptionsCount)

	var count int64
	require.NoError(t, db.Model(&Config{}).Where("k = ?", LocalClientConfKey).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestClientConfInvalid(t *testing.T) {
	s, db := newTestStore(t)

	bad := testClientConf
	bad.QuizOptionsCount = 0
	assert.True(t, errors.Is(s.SaveClientConf(bad), ErrInvalidClientConf))

	require.NoError(t, setConfig(db, LocalClientConfKey, `{"langPair":""}`))
	cfg, err := s.LoadClientConf(testClientConf)
	assert.True(t, errors.Is(err, ErrInvalidClientConf))
	assert.Equal(t, testClientConf, cfg)
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, quiz.Stats{}, stats)

	require.NoError(t, s.SaveStats(quiz.Stats{Score: 3, Incorrect: 1}))
	require.NoError(t, s.SaveStats(quiz.Stats{Score: 4, Incorrect: 1}))
	stats, err = s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, quiz.Stats{Score: 4, Incorrect: 1}, stats)
}

func TestUntranslatable(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.AddUntranslatable("xyzzy"))
	require.NoError(t, s.AddUntranslatable("qwerty"))
	require.NoError(t, s.AddUntranslatable("xyzzy"))

	list, err := s.ListUntranslatable()
	require.NoError(t, err)
	assert.Equal(t, []string{"xyzzy", "qwerty"}, list)
}

func TestDailyWord(t *testing.T) {
	s, _ := newTestStore(t)
	morning := time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local)
	evening := time.Date(2026, 10, 19, 21, 0, 0, 0, time.Local)
	nextDay := time.Date(2026, 10, 20, 8, 0, 0, 0, time.Local)

	_, err := s.DailyWordOf(morning)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, s.SaveDailyWord(morning, "time", "laikas"))
	item, err := s.DailyWordOf(evening)
	require.NoError(t, err)
	assert.Equal(t, "time", item.Word)
	assert.Equal(t, "laikas", item.Translation)

	_, err = s.DailyWordOf(nextDay)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, s.SaveDailyWord(evening, "house", "namas"))
	item, err = s.DailyWordOf(morning)
	require.NoError(t, err)
	assert.Equal(t, "house", item.Word)
}
