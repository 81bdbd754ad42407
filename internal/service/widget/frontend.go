package widget

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/oshokin/clock-widget/internal/config"
	"github.com/oshokin/clock-widget/internal/ui/console"
	"github.com/oshokin/clock-widget/internal/ui/gui"
	"github.com/oshokin/clock-widget/internal/ui/tui"
)

// AppID is the fyne application identifier.
const AppID = "com.oshokin.clockwidget"

// frontend is a Presenter that also owns the calling goroutine until the user quits.
type frontend interface {
	Presenter

	// bind connects user input to the controller.
	bind(c *Controller)
	// run blocks until the front end is closed or ctx is canceled.
	run(ctx context.Context) error
}

// newFrontend builds the front end for settings.Mode. It must be called on
// the main goroutine because the desktop toolkit requires it.
//
//nolint:ireturn // The mode decides the concrete type.
func newFrontend(ctx context.Context, cancel context.CancelFunc, settings *config.Config) frontend {
	switch settings.Mode {
	case config.ModeHeadless:
		return &headlessFrontend{
			Presenter: console.NewPresenter(ctx),
		}
	case config.ModeTUI:
		return &terminalFrontend{
			UI: tui.New(ctx),
		}
	default:
		fyneApp := app.NewWithID(AppID)

		window := fyneApp.NewWindow(settings.Window.Title)
		window.Resize(fyne.NewSize(settings.Window.Width, settings.Window.Height))
		window.SetMaster()
		window.SetOnClosed(cancel)

		return &desktopFrontend{
			View:   gui.NewView(ctx, window),
			app:    fyneApp,
			window: window,
		}
	}
}

// headlessFrontend logs instead of drawing.
type headlessFrontend struct {
	*console.Presenter
}

func (*headlessFrontend) bind(*Controller) {}

func (*headlessFrontend) run(ctx context.Context) error {
	<-ctx.Done()

	return nil
}

// terminalFrontend draws the widget with bubbletea.
type terminalFrontend struct {
	*tui.UI
}

func (f *terminalFrontend) bind(c *Controller) {
	f.Bind(c)
}

func (f *terminalFrontend) run(context.Context) error {
	return f.Run()
}

// desktopFrontend draws the widget in a fyne window.
type desktopFrontend struct {
	*gui.View

	// app is the fyne application.
	app fyne.App
	// window is the widget window.
	window fyne.Window
}

func (f *desktopFrontend) bind(c *Controller) {
	f.Bind(c)
}

func (f *desktopFrontend) run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		fyne.Do(f.app.Quit)
	}()

	// Blocks until the window closes or the app quits.
	f.window.ShowAndRun()

	return nil
}
