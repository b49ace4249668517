package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tagdraw/internal/domain"
	"tagdraw/internal/ingest"
	"tagdraw/internal/report"
	"tagdraw/internal/sampler"
	"tagdraw/internal/storage"
)

// DrawMode selects how the draw size is determined.
type DrawMode int

const (
	ModeFixed DrawMode = iota // exact count from the count field
	ModeRange                 // uniform roll between min and max
)

// focusArea is the control currently receiving keystrokes.
type focusArea int

const (
	focusMode focusArea = iota
	focusCount
	focusMin
	focusMax
)

// promptKind says which export the path prompt is collecting a filename for.
type promptKind int

const (
	promptNone promptKind = iota
	promptTags
	promptSources
	promptReport
)

// statusKind picks the style of the status line.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Default filenames pre-filled into the save prompt.
const (
	defaultTagsFile    = "danbooru_tags.txt"
	defaultSourcesFile = "tag_sources.txt"
	defaultReportFile  = "tag_report.html"
)

// Messages delivered to the update loop. The fetch runs inside a tea.Cmd;
// these are the only way its outcome crosses back into the UI.
type (
	fetchDoneMsg   struct{ res *domain.FetchResult }
	fetchFailedMsg struct{ err error }
	progressMsg    struct{ requests, max, candidates int }
)

// Model is the bubbletea model for the whole interface.
type Model struct {
	agg *sampler.Aggregator
	rng *rand.Rand
	log *zap.Logger

	styles Styles

	mode    DrawMode
	focus   focusArea
	countIn textinput.Model
	minIn   textinput.Model
	maxIn   textinput.Model

	spin     spinner.Model
	fetching bool

	result     *domain.FetchResult
	status     string
	statusKind statusKind

	prompt promptKind
	pathIn textinput.Model

	pool      viewport.Model
	poolReady bool

	progressChan chan progressMsg

	width  int
	height int
}

// New builds the model around a collector. The aggregator's progress
// callback feeds a buffered channel that the update loop drains, so the
// status line ticks along while the fetch command blocks.
func New(col domain.Collector, policy sampler.Policy, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	countIn := textinput.New()
	countIn.Placeholder = "15"
	countIn.CharLimit = 5
	countIn.Width = 6

	minIn := textinput.New()
	minIn.Placeholder = "5"
	minIn.CharLimit = 5
	minIn.Width = 6

	maxIn := textinput.New()
	maxIn.Placeholder = "25"
	maxIn.CharLimit = 5
	maxIn.Width = 6

	pathIn := textinput.New()
	pathIn.CharLimit = 255
	pathIn.Width = 40

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(DefaultStyles().Info),
	)

	progressChan := make(chan progressMsg, 16)
	agg := sampler.New(col, policy,
		sampler.WithLogger(log),
		sampler.WithProgress(func(requests, max, candidates int) {
			select {
			case progressChan <- progressMsg{requests, max, candidates}:
			default:
			}
		}))

	m := Model{
		agg:          agg,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		log:          log,
		styles:       DefaultStyles(),
		mode:         ModeFixed,
		focus:        focusMode,
		countIn:      countIn,
		minIn:        minIn,
		maxIn:        maxIn,
		pathIn:       pathIn,
		spin:         spin,
		pool:         viewport.New(80, 12),
		progressChan: progressChan,
		status:       "Pick a mode, set the size, press enter to generate",
	}
	return m
}

// Run starts the interactive program on the alternate screen and blocks
// until the user quits.
func Run(col domain.Collector, policy sampler.Policy, log *zap.Logger) error {
	p := tea.NewProgram(New(col, policy, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.waitForProgress()
}

// waitForProgress delivers the next progress tick. The handler re-arms it,
// keeping exactly one reader parked on the channel.
func (m Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	return func() tea.Msg {
		return <-ch
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pool.Width = msg.Width - 4
		if h := msg.Height - 16; h > 3 {
			m.pool.Height = h
		} else {
			m.pool.Height = 3
		}
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case progressMsg:
		if m.fetching {
			m.setStatus(statusInfo, fmt.Sprintf("request %d/%d, %d candidates so far",
				msg.requests, msg.max, msg.candidates))
		}
		return m, m.waitForProgress()

	case fetchDoneMsg:
		m.fetching = false
		m.result = msg.res
		if msg.res.Shortfall() {
			m.setStatus(statusWarning, msg.res.Message)
		} else {
			m.setStatus(statusSuccess, msg.res.Message)
		}
		m.refreshPool()
		return m, nil

	case fetchFailedMsg:
		// The whole run is discarded; nothing partial survives.
		m.fetching = false
		m.result = nil
		m.poolReady = false
		m.setStatus(statusError, "Error: "+msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// The path prompt swallows everything until saved or cancelled.
	if m.prompt != promptNone {
		switch key {
		case "esc":
			m.prompt = promptNone
			m.pathIn.Blur()
			m.setStatus(statusInfo, "Save cancelled")
			return m, nil
		case "enter":
			m.save(m.prompt, m.pathIn.Value())
			m.prompt = promptNone
			m.pathIn.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.pathIn, cmd = m.pathIn.Update(msg)
		return m, cmd
	}

	if key == "esc" {
		return m, tea.Quit
	}

	// Everything below changes state; locked out while a fetch runs.
	if m.fetching {
		return m, nil
	}

	switch key {
	case "enter":
		cmd := m.generate()
		return m, cmd

	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "ctrl+t":
		return m.openPrompt(promptTags, defaultTagsFile), nil
	case "ctrl+s":
		return m.openPrompt(promptSources, defaultSourcesFile), nil
	case "ctrl+r":
		return m.openPrompt(promptReport, defaultReportFile), nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.pool, cmd = m.pool.Update(msg)
		return m, cmd
	case "home":
		m.pool.GotoTop()
		return m, nil
	case "end":
		m.pool.GotoBottom()
		return m, nil
	}

	if m.focus == focusMode {
		switch key {
		case " ", "left", "right", "h", "l":
			m.toggleMode()
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusCount:
		m.countIn, cmd = m.countIn.Update(msg)
	case focusMin:
		m.minIn, cmd = m.minIn.Update(msg)
	case focusMax:
		m.maxIn, cmd = m.maxIn.Update(msg)
	}
	return m, cmd
}

// generate validates the inputs, resolves the draw size, and kicks off the
// fetch command. Validation failures stop here; the collector is never
// touched with bad input.
func (m *Model) generate() tea.Cmd {
	var count int
	switch m.mode {
	case ModeFixed:
		n, err := ingest.ParseCount(m.countIn.Value())
		if err != nil {
			m.setStatus(statusError, inputErrorMessage(err))
			return nil
		}
		count = n
	case ModeRange:
		r, err := ingest.ParseRange(m.minIn.Value(), m.maxIn.Value())
		if err != nil {
			m.setStatus(statusError, inputErrorMessage(err))
			return nil
		}
		count = r.Roll(m.rng)
	}

	m.fetching = true
	m.setStatus(statusInfo, fmt.Sprintf("Fetching random posts for %d tags...", count))

	agg := m.agg
	fetch := func() tea.Msg {
		res, err := agg.Fetch(context.Background(), count)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return fetchDoneMsg{res: res}
	}
	return tea.Batch(m.spin.Tick, fetch)
}

// inputErrorMessage maps validation failures onto the status line.
func inputErrorMessage(err error) string {
	switch {
	case errors.Is(err, ingest.ErrInvertedRange):
		return "Error: minimum value cannot be greater than the maximum value"
	case errors.Is(err, ingest.ErrNegativeCount):
		return "Error: tag counts cannot be negative"
	default:
		return "Error: enter valid whole numbers for the tag amounts"
	}
}

func (m Model) openPrompt(kind promptKind, defaultName string) Model {
	m.prompt = kind
	m.pathIn.SetValue(defaultName)
	m.pathIn.CursorEnd()
	m.pathIn.Focus()
	return m
}

// save runs the export behind the path prompt. Failures never clear the
// result; the user can fix the path and try again.
func (m *Model) save(kind promptKind, path string) {
	if path == "" {
		m.setStatus(statusWarning, "Save cancelled: no filename given")
		return
	}

	var err error
	var what string
	switch kind {
	case promptTags:
		what = "tags"
		err = storage.WriteTags(path, m.result)
	case promptSources:
		what = "sources"
		err = storage.WriteSources(path, m.result)
	case promptReport:
		what = "report"
		err = report.Write(path, m.result)
	}

	switch {
	case errors.Is(err, storage.ErrNothingToSave):
		m.setStatus(statusWarning, "Nothing to save yet, generate tags first")
	case err != nil:
		m.log.Warn("export failed", zap.String("what", what), zap.Error(err))
		m.setStatus(statusError, "Error: "+err.Error())
	default:
		m.setStatus(statusSuccess, fmt.Sprintf("Saved %s to %s", what, path))
	}
}

func (m *Model) toggleMode() {
	if m.mode == ModeFixed {
		m.mode = ModeRange
	} else {
		m.mode = ModeFixed
	}
	m.applyFocus()
}

// cycleFocus moves focus across the controls visible in the current mode.
func (m *Model) cycleFocus(dir int) {
	order := []focusArea{focusMode, focusCount}
	if m.mode == ModeRange {
		order = []focusArea{focusMode, focusMin, focusMax}
	}

	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	m.focus = order[idx]
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.countIn.Blur()
	m.minIn.Blur()
	m.maxIn.Blur()

	// Keep focus on a control that exists in the current mode.
	switch m.mode {
	case ModeFixed:
		if m.focus == focusMin || m.focus == focusMax {
			m.focus = focusCount
		}
	case ModeRange:
		if m.focus == focusCount {
			m.focus = focusMin
		}
	}

	switch m.focus {
	case focusCount:
		m.countIn.Focus()
	case focusMin:
		m.minIn.Focus()
	case focusMax:
		m.maxIn.Focus()
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) refreshPool() {
	if m.result == nil {
		m.poolReady = false
		return
	}
	m.pool.SetContent(poolContent(m.result))
	m.pool.GotoTop()
	m.poolReady = true
}
