package lingvo_widget

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/beastars1/lingvo-widget/conf"
	"github.com/beastars1/lingvo-widget/global"
	"github.com/beastars1/lingvo-widget/services/db/enity"
	"github.com/beastars1/lingvo-widget/services/dict"
	"github.com/beastars1/lingvo-widget/services/quiz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var errOffline = errors.New("offline")

type stubWords struct {
	mu    sync.Mutex
	queue []string
	calls int
}

func (s *stubWords) RandomWord(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.queue) == 0 {
		return "", errOffline
	}
	w := s.queue[0]
	s.queue = s.queue[1:]
	return w, nil
}

type stubDict map[string]string

func (s stubDict) Translate(_ context.Context, word, _ string) (string, error) {
	if word == "offline" {
		return "", errOffline
	}
	if tr, ok := s[word]; ok {
		return tr, nil
	}
	return "", dict.ErrNotFound
}

var testDict = stubDict{
	"time":  "laikas",
	"apple": "obuolys",
	"house": "namas",
	"water": "vanduo",
}

func newTestStore(t *testing.T) *enity.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormLogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, enity.Migrate(db))
	return enity.NewStore(db)
}

func newTestWidget(t *testing.T, ws *stubWords, store *enity.Store) *Widget {
	t.Helper()
	w := newWidget(ws, testDict, store, global.DefaultClientConf)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestTodayWordIsCachedPerDay(t *testing.T) {
	store := newTestStore(t)
	ws := &stubWords{queue: []string{"xyzzy", "time", "house"}}
	w := newTestWidget(t, ws, store)
	day := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	w.now = func() time.Time { return day }

	word, tr, err := w.TodayWord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "time", word)
	assert.Equal(t, "laikas", tr)
	assert.Equal(t, []string{"xyzzy"}, w.Game().Untranslatable())

	day = day.Add(6 * time.Hour)
	word, _, err = w.TodayWord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "time", word)
	assert.Equal(t, 2, ws.calls)

	day = day.Add(24 * time.Hour)
	word, tr, err = w.TodayWord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "house", word)
	assert.Equal(t, "namas", tr)
}

func TestTodayWordWithoutStore(t *testing.T) {
	w := newTestWidget(t, &stubWords{}, nil)

	_, _, err := w.TodayWord(context.Background())
	var fetchErr *quiz.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, quiz.SourceWords, fetchErr.Source)
}

func TestTranslate(t *testing.T) {
	w := newTestWidget(t, &stubWords{}, nil)
	ctx := context.Background()

	word, tr, err := w.Translate(ctx, "  apple ")
	require.NoError(t, err)
	assert.Equal(t, "apple", word)
	assert.Equal(t, "obuolys", tr)

	_, _, err = w.Translate(ctx, "   ")
	assert.True(t, errors.Is(err, ErrEmptyWord))

	word, tr, err = w.Translate(ctx, "xyzzy")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, word)
	assert.Empty(t, tr)

	word, tr, err = w.Translate(ctx, "offline")
	assert.True(t, errors.Is(err, errOffline))
	assert.Empty(t, word)
	assert.Empty(t, tr)
}

func TestRestoreFromStore(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveStats(quiz.Stats{Score: 7, Incorrect: 2}))
	require.NoError(t, store.AddUntranslatable("xyzzy"))

	w := newTestWidget(t, &stubWords{}, store)
	assert.Equal(t, quiz.Stats{Score: 7, Incorrect: 2}, w.Game().Stats())
	assert.Equal(t, []string{"xyzzy"}, w.Game().Untranslatable())
}

func TestInvalidClientConfFallsBack(t *testing.T) {
	w := newWidget(&stubWords{}, testDict, nil, conf.Client{})
	defer w.Stop()

	assert.Equal(t, global.DefaultClientConf, w.clientConf)
	assert.Equal(t, 2*time.Second, w.NextQuestionDelay())
}

func TestOptions(t *testing.T) {
	w := newWidget(&stubWords{}, testDict, nil, global.DefaultClientConf, WithDebug(), WithEnablePprof(false))
	defer w.Stop()

	assert.True(t, w.opts.debug)
	assert.False(t, w.opts.enablePprof)
}

func TestWithClock(t *testing.T) {
	day := time.Date(2026, 1, 2, 15, 0, 0, 0, time.Local)
	w := newWidget(&stubWords{queue: []string{"water"}}, testDict, newTestStore(t), global.DefaultClientConf,
		WithClock(func() time.Time { return day }))
	defer w.Stop()

	word, _, err := w.TodayWord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "water", word)
	assert.Equal(t, day, w.now())
}

func TestRunReportsNewVersion(t *testing.T) {
	w := newWidget(&stubWords{}, testDict, nil, global.DefaultClientConf,
		WithUpdateChecker(func() (bool, string, string) {
			return true, "https://example.com/lingvo.zip", "notes"
		}))
	defer w.Stop()
	notices := make(chan string, 1)
	w.OnNotice(func(msg string) { notices <- msg })

	w.Run()

	select {
	case msg := <-notices:
		assert.Equal(t, "A new version is available: https://example.com/lingvo.zip", msg)
	case <-time.After(time.Second):
		t.Fatal("no update notice")
	}
}

func TestCheckUpdateUpToDate(t *testing.T) {
	w := newWidget(&stubWords{}, testDict, nil, global.DefaultClientConf,
		WithUpdateChecker(func() (bool, string, string) { return false, "", "" }))
	defer w.Stop()
	notified := false
	w.OnNotice(func(string) { notified = true })

	w.checkUpdate()
	assert.False(t, notified)
}
