package lingvo_widget

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/beastars1/lingvo-widget/conf"
	"github.com/beastars1/lingvo-widget/global"
	"github.com/beastars1/lingvo-widget/services/db/enity"
	"github.com/beastars1/lingvo-widget/services/dict"
	"github.com/beastars1/lingvo-widget/services/logger"
	"github.com/beastars1/lingvo-widget/services/quiz"
	"github.com/beastars1/lingvo-widget/services/words"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Widget struct {
	ctx        context.Context
	cancel     func()
	opts       *options
	mu         *sync.Mutex
	httpSrv    *http.Server
	tr         quiz.Translator
	store      *enity.Store
	game       *quiz.Game
	clientConf conf.Client
	now        func() time.Time
	onNotice   func(msg string)
}

var (
	ErrEmptyWord = errors.New("please enter a word to translate")
	ErrNotFound  = dict.ErrNotFound
)

// NewWidget wires the remote clients and the sqlite store from the
// global configuration.
func NewWidget(opts ...ApplyOption) *Widget {
	appConf := global.Conf
	wordsCli := words.NewClient(appConf.WordAPI.Url,
		time.Duration(appConf.WordAPI.TimeoutSec)*time.Second, appConf.WordAPI.RequestsPerSec)
	dictCli := dict.NewClient(appConf.Dictionary.Url, appConf.Dictionary.ApiKey,
		time.Duration(appConf.Dictionary.TimeoutSec)*time.Second, appConf.Dictionary.RequestsPerSec)
	var store *enity.Store
	if global.SqliteDB != nil {
		store = enity.NewStore(global.SqliteDB)
	}
	if global.IsDevMode() {
		opts = append([]ApplyOption{WithDebug()}, opts...)
	} else {
		opts = append([]ApplyOption{WithProd()}, opts...)
	}
	return newWidget(wordsCli, dictCli, store, global.GetClientConf(), opts...)
}

func newWidget(ws quiz.WordSource, tr quiz.Translator, store *enity.Store, clientConf conf.Client,
	opts ...ApplyOption) *Widget {
	if conf.ValidClientConf(&clientConf) != nil {
		clientConf = global.DefaultClientConf
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Widget{
		ctx:        ctx,
		cancel:     cancel,
		opts:       defaultOpts(),
		mu:         &sync.Mutex{},
		tr:         tr,
		store:      store,
		clientConf: clientConf,
	}
	for _, fn := range opts {
		fn(w.opts)
	}
	w.now = w.opts.now
	var rec quiz.Recorder
	if store != nil {
		rec = store
	}
	w.game = quiz.NewGame(ws, tr, rec, quiz.Options{
		LangPair:        clientConf.LangPair,
		OptionsCount:    clientConf.QuizOptionsCount,
		MaxSkips:        clientConf.MaxSkips,
		MaxOptionRounds: clientConf.MaxOptionRounds,
	})
	w.restore()
	return w
}

func (w *Widget) restore() {
	if w.store == nil {
		return
	}
	stats, err := w.store.LoadStats()
	if err != nil {
		logger.Warn("load quiz stats failed", zap.Error(err))
	}
	list, err := w.store.ListUntranslatable()
	if err != nil {
		logger.Warn("load untranslatable words failed", zap.Error(err))
	}
	w.game.Restore(stats, list)
}

func (w *Widget) Game() *quiz.Game {
	return w.game
}

func (w *Widget) Context() context.Context {
	return w.ctx
}

func (w *Widget) NextQuestionDelay() time.Duration {
	return time.Duration(w.clientConf.NextQuestionDelaySec) * time.Second
}

func (w *Widget) Run() {
	if global.Conf.HttpServer.Enabled {
		go w.serveHttp(global.Conf.HttpServer.Addr)
	}
	if w.opts.checkUpdate != nil {
		go w.checkUpdate()
	}
	sentry.CaptureMessage(global.AppName + " started")
	logger.Info("widget started", "version", VersionString())
}

// OnNotice registers the sink for user facing notices, e.g. a new release.
func (w *Widget) OnNotice(fn func(msg string)) {
	w.mu.Lock()
	w.onNotice = fn
	w.mu.Unlock()
}

func (w *Widget) notify(msg string) {
	w.mu.Lock()
	fn := w.onNotice
	w.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (w *Widget) checkUpdate() {
	ok, downloadUrl, _ := w.opts.checkUpdate()
	if !ok {
		return
	}
	logger.Info("new version available", "url", downloadUrl)
	w.notify(fmt.Sprintf("A new version is available: %s", downloadUrl))
}

func (w *Widget) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Lock()
	srv := w.httpSrv
	w.mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (w *Widget) serveHttp(addr string) {
	if !w.opts.debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: w.newRouter(),
	}
	w.mu.Lock()
	w.httpSrv = srv
	w.mu.Unlock()
	logger.Info("local api listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("local api stopped", zap.Error(err))
	}
}

// TodayWord returns the word of the day, fetching and caching a new one
// when the store has none for today.
func (w *Widget) TodayWord(ctx context.Context) (string, string, error) {
	today := w.now()
	if w.store != nil {
		item, err := w.store.DailyWordOf(today)
		if err == nil {
			return item.Word, item.Translation, nil
		}
	}
	word, translation, err := w.game.FetchValidTranslation(ctx)
	if err != nil {
		return "", "", err
	}
	if w.store != nil {
		if err = w.store.SaveDailyWord(today, word, translation); err != nil {
			logger.Warn("save daily word failed", zap.Error(err))
		}
	}
	return word, translation, nil
}

// Translate looks up a user supplied word.
func (w *Widget) Translate(ctx context.Context, input string) (string, string, error) {
	word := strings.TrimSpace(input)
	if word == "" {
		return "", "", ErrEmptyWord
	}
	translation, err := w.tr.Translate(ctx, word, w.game.LangPair())
	if err != nil {
		return "", "", err
	}
	return word, translation, nil
}
