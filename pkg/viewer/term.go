package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/matzehuels/viewgrid/pkg/compose"
)

// Term shows the window in the terminal, two pixel rows per character cell
// using upper half blocks.
type Term struct {
	cfg config
}

// NewTerm returns a terminal viewer.
func NewTerm(opts ...Option) *Term { return &Term{cfg: newConfig(opts)} }

// Run starts a full-screen bubbletea program until the user quits or ctx
// is cancelled.
func (t *Term) Run(ctx context.Context, w *compose.Window) error {
	t.cfg.attach(w)
	m := newTermModel(ctx, w, t.cfg)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// =============================================================================
// Model
// =============================================================================

type postedMsg struct{}

type termKeys struct {
	Orbit    key.Binding
	Tilt     key.Binding
	Zoom     key.Binding
	Next     key.Binding
	Reset    key.Binding
	Snapshot key.Binding
	Quit     key.Binding
}

func (k termKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Orbit, k.Tilt, k.Zoom, k.Next, k.Reset, k.Snapshot, k.Quit}
}

func (k termKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultTermKeys() termKeys {
	b := func(keys []string, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
	}
	return termKeys{
		Orbit:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "azimuth")),
		Tilt:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "elevation")),
		Zoom:     b([]string{"+", "-"}, "zoom"),
		Next:     b([]string{"tab"}, "next view"),
		Reset:    b([]string{"r"}, "reset"),
		Snapshot: b([]string{SnapshotKey}, "snapshot"),
		Quit:     b([]string{"q", "esc"}, "quit"),
	}
}

type termModel struct {
	ctx      context.Context
	w        *compose.Window
	controls *Controls
	keys     termKeys
	help     help.Model

	width, height int
	status        string
	err           error
}

func newTermModel(ctx context.Context, w *compose.Window, cfg config) termModel {
	return termModel{
		ctx:      ctx,
		w:        w,
		controls: cfg.controls,
		keys:     defaultTermKeys(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
}

func (m termModel) Init() tea.Cmd { return waitPosted(m.ctx, m.w) }

// waitPosted turns window wake-ups into messages.
func waitPosted(ctx context.Context, w *compose.Window) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Posted():
			return postedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case postedMsg:
		if m.w.Drain() > 0 && m.w.State() != compose.Closed {
			m.err = m.w.Render()
		}
		return m, waitPosted(m.ctx, m.w)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		k := termKey(msg)
		if isQuit(k) {
			return m, tea.Quit
		}
		m.err = press(m.w, m.controls, k)
		if r := m.controls.Active(m.w); r != nil {
			m.status = fmt.Sprintf("view %d/%d %s", r.Index+1, len(m.w.ContentRenderers()), r.Title)
		}
		if k == SnapshotKey {
			m.status = "snapshot"
		}
	}
	return m, nil
}

// termKey maps bubbletea key names to viewer key names.
func termKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return KeyUp
	case tea.KeyDown:
		return KeyDown
	case tea.KeyLeft:
		return KeyLeft
	case tea.KeyRight:
		return KeyRight
	case tea.KeyTab:
		return KeyTab
	case tea.KeyEsc:
		return KeyEsc
	}
	return msg.String()
}

var (
	termTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	termStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	termErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m termModel) View() string {
	var b strings.Builder
	b.WriteString(termTitleStyle.Render(m.w.Name))
	if m.status != "" {
		b.WriteString("  " + termStatusStyle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("  " + termErrStyle.Render(m.err.Error()))
	}
	b.WriteByte('\n')
	if frame := m.w.Frame(); frame != nil {
		b.WriteString(halfBlocks(frame, m.width, max(m.height-2, 1)))
	}
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// halfBlocks scales img into cols x rows character cells keeping its aspect
// ratio and draws each cell as an upper half block.
func halfBlocks(img image.Image, cols, rows int) string {
	src := img.Bounds()
	if src.Empty() || cols <= 0 || rows <= 0 {
		return ""
	}
	pw, ph := fit(src.Dx(), src.Dy(), cols, rows*2)
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph+ph%2))
	draw.ApproxBiLinear.Scale(dst, image.Rect(0, 0, pw, ph), img, src, draw.Src, nil)

	var b strings.Builder
	for y := 0; y < dst.Bounds().Dy(); y += 2 {
		for x := 0; x < pw; x++ {
			top, bottom := dst.RGBAAt(x, y), dst.RGBAAt(x, y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom))).
				Render("▀"))
		}
		if y+2 < dst.Bounds().Dy() {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// fit returns the largest w x h with the aspect of sw x sh inside mw x mh.
func fit(sw, sh, mw, mh int) (int, int) {
	w, h := mw, mw*sh/sw
	if h > mh {
		w, h = mh*sw/sh, mh
	}
	return max(w, 1), max(h, 1)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
