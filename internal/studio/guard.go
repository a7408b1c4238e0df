package studio

import (
	"sync"

	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
)

const (
	DefaultPlaceholder   = "Describe your imagination in detail... "
	GeneratingPromptText = "Generating prompt..."
)

// ErrBusy is returned when an operation needs the controls while another one holds them.
var ErrBusy = apperrors.New(apperrors.KindBusy, "studio.Guard", "Another generation is already in progress.")

// Guard owns the input controls. While held, the input and every action
// control are disabled.
type Guard struct {
	mu       sync.Mutex
	held     bool
	controls models.Controls
}

func NewGuard() *Guard {
	return &Guard{
		controls: models.Controls{Placeholder: DefaultPlaceholder},
	}
}

// Acquire locks the controls and clears the input. The returned release
// func unlocks them; calling it more than once has no further effect.
func (g *Guard) Acquire(promptOnly bool) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held {
		return nil, ErrBusy
	}
	g.held = true

	if promptOnly {
		g.controls.Placeholder = GeneratingPromptText
	}
	g.controls.InputText = ""
	g.setDisabled(true)

	var once sync.Once
	return func() {
		once.Do(g.release)
	}, nil
}

func (g *Guard) release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.held = false
	g.controls.Placeholder = DefaultPlaceholder
	g.setDisabled(false)
}

func (g *Guard) setDisabled(disabled bool) {
	g.controls.InputDisabled = disabled
	g.controls.GeneratePromptDisabled = disabled
	g.controls.GenerateImagesDisabled = disabled
	g.controls.AspectRatioDisabled = disabled
	g.controls.ImageCountDisabled = disabled
}

func (g *Guard) Held() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held
}

func (g *Guard) Controls() models.Controls {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.controls
}

// SetInput replaces the text of the prompt input.
func (g *Guard) SetInput(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controls.InputText = text
}
