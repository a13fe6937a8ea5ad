package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beastars1/lingvo-widget/services/dict"
	"github.com/beastars1/lingvo-widget/services/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultOptionsCount    = 4
	DefaultMaxSkips        = 20
	DefaultMaxOptionRounds = 10

	FeedbackCorrect = "Correct!"
)

var (
	ErrTooManySkips     = errors.New("too many untranslatable words in a row")
	ErrNotEnoughOptions = errors.New("could not collect enough distinct options")
	ErrNoQuestion       = errors.New("no question loaded")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrOptionOutOfRange = errors.New("option index out of range")
)

type (
	WordSource interface {
		RandomWord(ctx context.Context) (string, error)
	}
	Translator interface {
		Translate(ctx context.Context, word, langPair string) (string, error)
	}
	// Recorder persists game progress. Failures are logged, never fatal.
	Recorder interface {
		AddUntranslatable(word string) error
		SaveStats(stats Stats) error
	}
	Stats struct {
		Score     int `json:"score"`
		Incorrect int `json:"incorrect"`
	}
	Options struct {
		LangPair        string
		OptionsCount    int
		MaxSkips        int
		MaxOptionRounds int
		Rand            *rand.Rand
	}
	Question struct {
		Word    string   `json:"word"`
		Correct string   `json:"-"`
		Options []string `json:"options"`
	}
	Result struct {
		Correct  bool
		Selected string
		Answer   string
		Feedback string
		Stats    Stats
	}
	Game struct {
		words  WordSource
		tr     Translator
		rec    Recorder
		opts   Options
		rndMu  sync.Mutex
		rnd    *rand.Rand
		mu     sync.Mutex
		onSkip func(word string)

		current        *Question
		answered       bool
		stats          Stats
		untranslatable []string
	}
)

func (o *Options) withDefaults() {
	if o.LangPair == "" {
		o.LangPair = dict.DefaultLangPair
	}
	if o.OptionsCount < 2 {
		o.OptionsCount = DefaultOptionsCount
	}
	if o.MaxSkips <= 0 {
		o.MaxSkips = DefaultMaxSkips
	}
	if o.MaxOptionRounds <= 0 {
		o.MaxOptionRounds = DefaultMaxOptionRounds
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// NewGame creates a game. rec may be nil when progress is not persisted.
func NewGame(words WordSource, tr Translator, rec Recorder, opts Options) *Game {
	opts.withDefaults()
	return &Game{
		words: words,
		tr:    tr,
		rec:   rec,
		opts:  opts,
		rnd:   opts.Rand,
	}
}

// Restore loads progress from a previous session.
func (g *Game) Restore(stats Stats, untranslatable []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if stats.Score < 0 {
		stats.Score = 0
	}
	if stats.Incorrect < 0 {
		stats.Incorrect = 0
	}
	g.stats = stats
	g.untranslatable = append([]string(nil), untranslatable...)
}

// OnSkip registers a callback fired for every untranslatable word.
func (g *Game) OnSkip(fn func(word string)) {
	g.mu.Lock()
	g.onSkip = fn
	g.mu.Unlock()
}

func (g *Game) LangPair() string {
	return g.opts.LangPair
}

func (g *Game) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

func (g *Game) Untranslatable() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.untranslatable...)
}

func (g *Game) Current() *Question {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil
	}
	return g.current.copy()
}

func (q *Question) copy() *Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

// FetchValidTranslation draws random words until one of them has a
// translation. Untranslatable words are recorded and skipped.
func (g *Game) FetchValidTranslation(ctx context.Context) (string, string, error) {
	for skips := 0; skips < g.opts.MaxSkips; skips++ {
		word, err := g.words.RandomWord(ctx)
		if err != nil {
			return "", "", &FetchError{Source: SourceWords, Err: err}
		}
		translation, err := g.tr.Translate(ctx, word, g.opts.LangPair)
		if err == nil {
			return word, translation, nil
		}
		if !errors.Is(err, dict.ErrNotFound) {
			return "", "", &FetchError{Source: SourceDictionary, Word: word, Err: err}
		}
		logger.Info("skipping untranslatable word", "word", word)
		g.skip(word)
	}
	return "", "", ErrTooManySkips
}

func (g *Game) skip(word string) {
	g.mu.Lock()
	g.untranslatable = append(g.untranslatable, word)
	onSkip := g.onSkip
	g.mu.Unlock()
	if g.rec != nil {
		if err := g.rec.AddUntranslatable(word); err != nil {
			logger.Warn("save untranslatable word failed", zap.Error(err), "word", word)
		}
	}
	if onSkip != nil {
		onSkip(word)
	}
}

// NextQuestion loads a new word with shuffled answer options.
func (g *Game) NextQuestion(ctx context.Context) (*Question, error) {
	word, correct, err := g.FetchValidTranslation(ctx)
	if err != nil {
		return nil, err
	}
	options, err := g.prepareOptions(ctx, correct)
	if err != nil {
		return nil, err
	}
	g.shuffle(options)
	q := &Question{
		Word:    word,
		Correct: correct,
		Options: options,
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = q
	g.answered = false
	return q.copy(), nil
}

func (g *Game) shuffle(options []string) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	g.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

// Answer checks the option at index against the correct translation.
// Only the first answer to a question is scored.
func (g *Game) Answer(index int) (*Result, error) {
	g.mu.Lock()
	if g.current == nil {
		g.mu.Unlock()
		return nil, ErrNoQuestion
	}
	if index < 0 || index >= len(g.current.Options) {
		g.mu.Unlock()
		return nil, ErrOptionOutOfRange
	}
	if g.answered {
		g.mu.Unlock()
		return nil, ErrAlreadyAnswered
	}
	g.answered = true
	res := &Result{
		Selected: g.current.Options[index],
		Answer:   g.current.Correct,
	}
	if res.Selected == g.current.Correct {
		g.stats.Score++
		res.Correct = true
		res.Feedback = FeedbackCorrect
	} else {
		g.stats.Incorrect++
		res.Feedback = fmt.Sprintf("Wrong! Correct answer: %s", g.current.Correct)
	}
	res.Stats = g.stats
	g.mu.Unlock()

	g.saveStats(res.Stats)
	return res, nil
}

func (g *Game) Reset() {
	g.mu.Lock()
	g.stats = Stats{}
	g.mu.Unlock()
	g.saveStats(Stats{})
}

func (g *Game) saveStats(stats Stats) {
	if g.rec == nil {
		return
	}
	if err := g.rec.SaveStats(stats); err != nil {
		logger.Warn("save quiz stats failed", zap.Error(err))
	}
}
