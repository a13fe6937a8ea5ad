package lingvo_widget

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/atotto/clipboard"
	"github.com/beastars1/lingvo-widget/global"
	"github.com/beastars1/lingvo-widget/services/logger"
	"github.com/beastars1/lingvo-widget/services/quiz"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	layout = "2006-01-02 15:04:05"

	msgEnterWord          = "Please enter a word to translate."
	msgFetchWordFailed    = "Unable to fetch word. Please try again later."
	msgFetchTransFailed   = "Unable to fetch translation. Please try again later."
	msgTranslationMissing = "Translation not found"
	msgQuestionFailed     = "Could not load a question."
)

// Gui owns every fyne object. Fields are only touched on the fyne
// goroutine; background work posts back through fyne.Do.
type Gui struct {
	w      *Widget
	window fyne.Window

	wordDisplay        *widget.Label
	translationDisplay *widget.Label
	loadingLabel       *widget.Label
	wordEntry          *widget.Entry
	translateButton    *widget.Button
	copyButton         *widget.Button
	translationResult  *widget.Label
	questionLabel      *widget.Label
	optionButtons      []*widget.Button
	nextButton         *widget.Button
	feedbackLabel      *widget.Label
	scoreLabel         *widget.Label
	incorrectLabel     *widget.Label
	statusLabel        *widget.Label
	untranslatable     binding.StringList

	loading         int
	answered        bool
	lastTranslation string
	nextTimer       *time.Timer
	// questionGen tells a pending auto-advance whether its question is
	// still on screen.
	questionGen     int
	questionLoading bool

	async       func(fn func())
	errorDialog func(err error)
}

func NewGui(w *Widget) *Gui {
	g := &Gui{
		w:              w,
		untranslatable: binding.NewStringList(),
		async:          func(fn func()) { go fn() },
	}
	g.errorDialog = func(err error) {
		dialog.ShowError(err, g.window)
	}
	return g
}

func (g *Gui) LoadUI(app fyne.App) {
	g.window = app.NewWindow(global.AppName)

	g.wordDisplay = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	g.translationDisplay = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	g.loadingLabel = widget.NewLabelWithStyle("Loading...", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	g.loadingLabel.Importance = widget.HighImportance
	g.loadingLabel.Hide()

	g.wordEntry = widget.NewEntry()
	g.wordEntry.SetPlaceHolder("English word")
	g.wordEntry.OnSubmitted = func(string) { g.translateWord() }
	g.translateButton = widget.NewButton("Translate to Lithuanian", g.translateWord)
	g.copyButton = widget.NewButton("Copy", g.copyTranslation)
	g.copyButton.Disable()
	g.translationResult = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	g.questionLabel = widget.NewLabelWithStyle("Loading...", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	g.questionLabel.Wrapping = fyne.TextWrapWord
	optionCount := g.w.clientConf.QuizOptionsCount
	g.optionButtons = make([]*widget.Button, optionCount)
	optionBox := container.NewGridWithColumns(1)
	for i := 0; i < optionCount; i++ {
		i := i
		g.optionButtons[i] = widget.NewButton("Loading...", func() { g.checkAnswer(i) })
		optionBox.Add(g.optionButtons[i])
	}
	g.nextButton = widget.NewButton("Next question", g.nextQuizQuestion)
	g.feedbackLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	stats := g.w.Game().Stats()
	g.scoreLabel = widget.NewLabelWithStyle(scoreText(stats), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	g.incorrectLabel = widget.NewLabelWithStyle(incorrectText(stats), fyne.TextAlignCenter, fyne.TextStyle{})
	resetButton := widget.NewButton("Reset score", g.resetScore)

	_ = g.untranslatable.Set(g.w.Game().Untranslatable())
	g.w.Game().OnSkip(func(word string) {
		fyne.Do(func() {
			_ = g.untranslatable.Append(word)
		})
	})
	untranslatableList := widget.NewListWithData(g.untranslatable,
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		})

	g.statusLabel = widget.NewLabel("")
	g.statusLabel.Wrapping = fyne.TextWrapWord

	top := container.NewVBox(
		heading("Today's Word"),
		g.wordDisplay,
		g.translationDisplay,
		g.loadingLabel,
		widget.NewSeparator(),
		widget.NewLabel("Enter a word to translate"),
		g.wordEntry,
		container.NewGridWithColumns(2, g.translateButton, g.copyButton),
		g.translationResult,
		widget.NewSeparator(),
		heading("Quiz: What is the translation?"),
		g.questionLabel,
		optionBox,
		g.feedbackLabel,
		container.NewGridWithColumns(2, g.nextButton, resetButton),
		g.scoreLabel,
		g.incorrectLabel,
		widget.NewSeparator(),
		widget.NewLabel("Untranslatable Words:"),
	)
	content := container.NewBorder(top, g.statusLabel, nil, nil, untranslatableList)

	g.window.SetContent(content)
	g.window.Resize(fyne.NewSize(450, 800))
	g.window.SetCloseIntercept(func() {
		if err := g.w.Stop(); err != nil {
			logger.Warn("stop widget failed", zap.Error(err))
		}
		g.window.Close()
	})
	g.window.Show()

	g.w.OnNotice(func(msg string) {
		fyne.Do(func() {
			g.status(msg)
		})
	})
	g.start()
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

func scoreText(stats quiz.Stats) string {
	return fmt.Sprintf("Score: %d", stats.Score)
}

func incorrectText(stats quiz.Stats) string {
	return fmt.Sprintf("Incorrect: %d", stats.Incorrect)
}

// start loads today's word and then the first question.
func (g *Gui) start() {
	g.showLoading(true)
	g.async(func() {
		word, translation, err := g.w.TodayWord(g.w.Context())
		fyne.Do(func() {
			g.showLoading(false)
			if err != nil {
				g.showFetchError(err)
				return
			}
			g.wordDisplay.SetText(fmt.Sprintf("English: %s", word))
			g.translationDisplay.SetText(fmt.Sprintf("Lithuanian: %s", translation))
		})
		fyne.Do(g.nextQuizQuestion)
	})
}

func (g *Gui) showLoading(isLoading bool) {
	if isLoading {
		g.loading++
	} else if g.loading > 0 {
		g.loading--
	}
	if g.loading > 0 {
		g.loadingLabel.Show()
		g.wordEntry.Disable()
		g.translateButton.Disable()
		g.nextButton.Disable()
		g.setOptionsEnabled(false)
		return
	}
	g.loadingLabel.Hide()
	g.wordEntry.Enable()
	g.translateButton.Enable()
	g.nextButton.Enable()
	g.setOptionsEnabled(!g.answered && g.w.Game().Current() != nil)
}

func (g *Gui) setOptionsEnabled(enabled bool) {
	for _, button := range g.optionButtons {
		if enabled {
			button.Enable()
		} else {
			button.Disable()
		}
	}
}

func (g *Gui) showFetchError(err error) {
	logger.Error("remote request failed", zap.Error(err))
	msg := msgFetchTransFailed
	var fetchErr *quiz.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Source == quiz.SourceWords {
		msg = msgFetchWordFailed
	}
	g.errorDialog(errors.New(msg))
}

func (g *Gui) translateWord() {
	input := g.wordEntry.Text
	g.showLoading(true)
	g.async(func() {
		_, translation, err := g.w.Translate(g.w.Context(), input)
		fyne.Do(func() {
			g.showLoading(false)
			switch {
			case errors.Is(err, ErrEmptyWord):
				g.errorDialog(errors.New(msgEnterWord))
			case errors.Is(err, ErrNotFound):
				g.lastTranslation = ""
				g.copyButton.Disable()
				g.translationResult.SetText(msgTranslationMissing)
			case err != nil:
				logger.Error("translate failed", zap.Error(err), "word", input)
				g.errorDialog(errors.New(msgFetchTransFailed))
			default:
				g.lastTranslation = translation
				g.copyButton.Enable()
				g.translationResult.SetText(fmt.Sprintf("Lithuanian: %s", translation))
			}
		})
	})
}

func (g *Gui) copyTranslation() {
	if g.lastTranslation == "" {
		return
	}
	if err := clipboard.WriteAll(g.lastTranslation); err != nil {
		logger.Warn("copy to clipboard failed", zap.Error(err))
		g.status("Copy failed")
		return
	}
	g.status(fmt.Sprintf("Copied %q to clipboard", g.lastTranslation))
}

func (g *Gui) stopNextTimer() {
	if g.nextTimer != nil {
		g.nextTimer.Stop()
		g.nextTimer = nil
	}
}

func (g *Gui) nextQuizQuestion() {
	if g.questionLoading {
		return
	}
	g.stopNextTimer()
	g.questionGen++
	g.questionLoading = true
	g.answered = false
	g.feedbackLabel.SetText("")
	g.showLoading(true)
	g.async(func() {
		q, err := g.w.Game().NextQuestion(g.w.Context())
		fyne.Do(func() {
			g.questionLoading = false
			if err != nil {
				g.answered = true
				g.showLoading(false)
				g.questionLabel.SetText(msgQuestionFailed)
				if !errors.Is(err, quiz.ErrTooManySkips) && !errors.Is(err, quiz.ErrNotEnoughOptions) {
					g.showFetchError(err)
				} else {
					g.status(err.Error())
				}
				return
			}
			g.questionLabel.SetText(fmt.Sprintf("What is the Lithuanian word for '%s'?", q.Word))
			for i, button := range g.optionButtons {
				if i < len(q.Options) {
					button.SetText(q.Options[i])
				}
			}
			g.showLoading(false)
		})
	})
}

// nextAfterAnswer runs when the post-answer delay expires. It does nothing
// if the user already moved on to another question.
func (g *Gui) nextAfterAnswer(gen int) {
	if gen != g.questionGen || g.questionLoading {
		return
	}
	g.nextQuizQuestion()
}

func (g *Gui) checkAnswer(index int) {
	res, err := g.w.Game().Answer(index)
	if err != nil {
		logger.Debug("answer ignored", zap.Error(err))
		return
	}
	g.answered = true
	g.setOptionsEnabled(false)
	g.feedbackLabel.SetText(res.Feedback)
	if res.Correct {
		g.feedbackLabel.Importance = widget.SuccessImportance
	} else {
		g.feedbackLabel.Importance = widget.DangerImportance
	}
	g.feedbackLabel.Refresh()
	g.updateStats(res.Stats)

	g.stopNextTimer()
	gen := g.questionGen
	g.nextTimer = time.AfterFunc(g.w.NextQuestionDelay(), func() {
		fyne.Do(func() {
			g.nextAfterAnswer(gen)
		})
	})
}

func (g *Gui) updateStats(stats quiz.Stats) {
	g.scoreLabel.SetText(scoreText(stats))
	g.incorrectLabel.SetText(incorrectText(stats))
}

func (g *Gui) resetScore() {
	g.w.Game().Reset()
	g.updateStats(g.w.Game().Stats())
	g.status("Score reset")
}

func (g *Gui) status(text string) {
	g.statusLabel.SetText(fmt.Sprintf("%s : %s", time.Now().Format(layout), text))
}
