package main

import (
	"os"

	"fyne.io/fyne/v2/app"
	lingvo "github.com/beastars1/lingvo-widget"
	"github.com/beastars1/lingvo-widget/bootstrap"
	"github.com/beastars1/lingvo-widget/global"

	"github.com/flopp/go-findfont"
)

const (
	appID       = "com.github.beastars1.lingvo-widget"
	defaultFont = "DejaVuSans.ttf"
)

// Lithuanian needs glyphs like ą, č, ė, š, ž. LINGVO_FONT picks another
// installed font by file name.
func init() {
	name := os.Getenv("LINGVO_FONT")
	if name == "" {
		name = defaultFont
	}
	if path, err := findfont.Find(name); err == nil {
		os.Setenv("FYNE_FONT", path)
	}
}

func main() {
	defer os.Unsetenv("FYNE_FONT")
	a := app.NewWithID(appID)

	bootstrap.InitApp()
	defer global.Cleanup()

	w := lingvo.NewWidget()
	defer w.Stop()

	lingvo.NewGui(w).LoadUI(a)
	w.Run()
	a.Run()
}
