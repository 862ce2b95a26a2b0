package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-dash/internal/audio"
	"github.com/vovakirdan/astro-dash/internal/core"
	"github.com/vovakirdan/astro-dash/internal/games/astrodash"
	"github.com/vovakirdan/astro-dash/internal/loop"
	"github.com/vovakirdan/astro-dash/internal/registry"
	"github.com/vovakirdan/astro-dash/internal/storage"
)

const statusDuration = 4 * time.Second

// Options are the collaborators a Model talks to. Every field may be left zero.
type Options struct {
	Board      *storage.Resilient // Score board and stats; nil skips both
	Audio      audio.Player       // Cue player; nil means silent
	PlayerName string             // Prefilled in the name entry
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	board      *storage.Resilient
	audio      audio.Player
	config     core.RuntimeConfig
	driver     *loop.Driver
	keys       *KeyMapper
	hold       *Hold
	inputFrame core.InputFrame
	gameState  core.GameState
	lastFrame  *frameCache

	nameInput   textinput.Model
	naming      bool
	pending     storage.Submission
	finished    bool // Run end already recorded
	newBest     bool
	status      string
	statusUntil time.Time

	quitting   bool
	backToMenu bool
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}

	ti := textinput.New()
	ti.Placeholder = "PILOT"
	ti.CharLimit = storage.MaxNameLen
	ti.Width = storage.MaxNameLen + 1
	ti.SetValue(truncateName(opts.PlayerName))

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		board:      opts.Board,
		audio:      player,
		config:     cfg,
		driver:     loop.NewDriver(),
		keys:       NewKeyMapper(),
		hold:       &Hold{},
		inputFrame: core.NewInputFrame(),
		lastFrame:  &frameCache{},
		nameInput:  ti,
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.driver.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.driver.SetVisible(false)
		m.hold.Release()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.naming {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		// Back to the menu from screens that are not a live run
		if st := m.game.State(); st.GameOver || st.Phase == astrodash.StateTitle {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame, m.hold, m.now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleNameKey feeds the name entry shown after a run.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.naming = false
		m.nameInput.Blur()
		m.setStatus("Score not submitted")
		return m, nil
	case "enter":
		m.submitName()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) submitName() {
	sub := m.pending
	sub.Name = m.nameInput.Value()
	res := m.board.SubmitScore(sub)
	m.setStatus(res.Message)
	if res.Success {
		m.naming = false
		m.nameInput.Blur()
	}
}

// handleTick advances the simulation by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	in := m.inputFrame.Clone()
	in.Hold = m.hold.Direction(now)

	res, ok := m.driver.Frame(now, m.game, in)
	if ok {
		m.gameState = res.State
		audio.Dispatch(m.audio, res.Events)
		m.inputFrame.Clear()
	}

	switch {
	case m.gameState.GameOver && !m.finished:
		m.finishRun()
	case !m.gameState.GameOver && m.finished:
		// New run or back on the title screen
		m.finished = false
		m.newBest = false
		if m.naming {
			m.naming = false
			m.nameInput.Blur()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRun folds the run into the stats and opens the name entry.
func (m *Model) finishRun() {
	m.finished = true
	if m.board == nil {
		return
	}

	result := runResult(m.game, m.gameState)
	stats, best := astrodash.RecordRun(m.board.LoadStats(), result)
	m.board.SaveStats(stats)
	m.newBest = best

	if result.Score <= 0 {
		return
	}
	m.pending = storage.Submission{
		Mode:     result.Mode,
		Score:    result.Score,
		Stickers: result.Stickers,
		Level:    result.Level,
	}
	m.naming = true
	m.nameInput.Focus()
}

// runResult asks the game for its run result, falling back to the last state.
func runResult(g registry.Game, st core.GameState) astrodash.RunResult {
	if r, ok := g.(interface{ Result() astrodash.RunResult }); ok {
		return r.Result()
	}
	return astrodash.RunResult{
		Score:        st.Score,
		Stickers:     st.Stickers,
		StickersEver: st.Stickers,
		Level:        st.Level,
		Won:          st.Won,
		Mode:         g.ID(),
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.now().Add(statusDuration)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".astrodash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("Screenshot failed")
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("Screenshot failed")
		return
	}
	m.setStatus("Saved " + filename)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.naming {
		title := "SUBMIT SCORE"
		if m.newBest {
			title = "NEW PERSONAL BEST"
		}
		body := fmt.Sprintf("Score %d   Stickers %d   Level %d\n\nName: %s",
			m.pending.Score, m.pending.Stickers, m.pending.Level, m.nameInput.View())
		if m.status != "" {
			body += "\n\n" + m.status
		}
		return renderPanel(m.screen.Width(), m.screen.Height(), title, body, "ENTER submit  ESC skip")
	}

	// Hidden terminals keep showing the last frame
	if !m.driver.Visible() && m.lastFrame.view != "" {
		return m.lastFrame.view
	}

	m.game.Render(m.screen)
	if m.status != "" && m.now().Before(m.statusUntil) {
		m.screen.DrawTextCenteredColored(m.screen.Height()-1, " "+m.status+" ", core.ColorBrightYellow)
	} else if m.newBest && m.gameState.GameOver {
		m.screen.DrawTextCenteredColored(m.screen.Height()-1, " New personal best! ", core.ColorBrightYellow)
	}
	m.lastFrame.view = RenderScreen(m.screen)
	return m.lastFrame.view
}

// frameCache holds the last rendered game frame across model copies.
type frameCache struct {
	view string
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > storage.MaxNameLen {
		r = r[:storage.MaxNameLen]
	}
	return string(r)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Focus loss pauses the frame driver
	)

	_, err := p.Run()
	return err
}
