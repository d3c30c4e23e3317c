package diagram

// Status is the display state of the diagram panel.
type Status int

const (
	StatusHidden Status = iota
	StatusPending
	StatusRendered
	StatusFailed
)

// Panel is the diagram slot of the algorithm stage.
type Panel struct {
	Status Status
	ID     string
	Source string
	SVG    string
	Path   string
	Err    string

	// ShowSource expands the source detail.
	ShowSource bool
}

// NewPanel prepares a panel for block: hidden without a diagram, otherwise
// pending on a fresh render target.
func NewPanel(block Block, newID func() string) Panel {
	if !block.Found {
		return Panel{Status: StatusHidden}
	}
	return Panel{
		Status: StatusPending,
		ID:     newID(),
		Source: block.Source,
	}
}

// Apply installs a render result. Results for another target, or for a
// panel that already settled, are ignored and Apply returns false.
func (p *Panel) Apply(res Result) bool {
	if p.Status != StatusPending || res.ID != p.ID {
		return false
	}
	if res.Err != nil {
		p.Status = StatusFailed
		p.Err = res.Err.Error()
		return true
	}
	p.Status = StatusRendered
	p.SVG = res.SVG
	p.Path = res.Path
	return true
}

// ToggleSource flips the source detail. It has no effect on a hidden panel.
func (p *Panel) ToggleSource() {
	if p.Status == StatusHidden {
		return
	}
	p.ShowSource = !p.ShowSource
}
