package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pharmsim/internal/library"
	"pharmsim/internal/pharma"
)

const (
	stateMenu = iota
	stateConfig
	stateCurve
)

var configParamNames = []string{"baseline", "emax", "ec50", "hill", "dose_min", "dose_max", "points"}

type app struct {
	state       int
	cursor      int
	drugs       []library.Drug
	selected    library.Drug
	params      map[string]float64
	paramCursor int
	editing     bool
	editBuf     string
	live        TuneModel
	width       int
}

// NewApp builds the interactive application over a drug library.
func NewApp(lib *library.Library) *app {
	return &app{
		state: stateMenu,
		drugs: lib.List(),
		width: 80,
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		if a.state == stateCurve {
			newLive, cmd := a.live.Update(msg)
			a.live = newLive.(TuneModel)
			return a, cmd
		}
	}
	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateConfig:
		return a.configKey(msg)
	case stateCurve:
		if msg.String() == "esc" {
			a.state = stateConfig
			return a, nil
		}
		newLive, cmd := a.live.Update(msg)
		a.live = newLive.(TuneModel)
		return a, cmd
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.drugs)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selected = a.drugs[a.cursor]
		a.params = map[string]float64{
			"baseline": a.selected.Baseline,
			"emax":     a.selected.Emax,
			"ec50":     a.selected.EC50,
			"hill":     a.selected.Hill,
			"dose_min": a.selected.DoseMin,
			"dose_max": a.selected.DoseMax,
			"points":   50,
		}
		a.state, a.paramCursor = stateConfig, 0
	}
	return a, nil
}

func (a app) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(a.editBuf, "%f", &val)
			a.params[configParamNames[a.paramCursor]] = val
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(configParamNames)-1 {
			a.paramCursor++
		}
	case "enter", " ":
		a.editing = true
		a.editBuf = fmt.Sprintf("%.2f", a.params[configParamNames[a.paramCursor]])
	case "s":
		return a.start()
	}
	return a, nil
}

func (a app) start() (tea.Model, tea.Cmd) {
	model := &pharma.Hill{
		Baseline: a.params["baseline"],
		Emax:     a.params["emax"],
		EC50:     a.params["ec50"],
		N:        a.params["hill"],
	}
	points := int(a.params["points"])
	if points < 2 {
		points = 50
	}
	a.live = NewTuneModel(a.selected.Name, a.selected.Unit, model,
		a.params["dose_min"], a.params["dose_max"], points)
	a.state = stateCurve
	return a, a.live.Init()
}

func (a app) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateCurve:
		return a.live.View()
	}
	return ""
}

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuMarker   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuDetail   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuDimmed   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKeyHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

func (a app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("PHARMSIM") + "\n")
	b.WriteString("    " + menuSubtitle.Render("dose-response virtual lab") + "\n")
	b.WriteString("    " + Separator(25) + "\n\n")
	for i, d := range a.drugs {
		desc := d.Class
		if len(desc) > 28 {
			desc = desc[:25] + "..."
		}
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				menuMarker.Render("▸"),
				menuActive.Render(fmt.Sprintf("%-16s", d.Name)),
				menuDetail.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				menuInactive.Render(fmt.Sprintf("  %-16s", d.Name)),
				menuDimmed.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKeyHint.Render("j/k") + menuInactive.Render(" navigate  ") +
		menuKeyHint.Render("enter") + menuInactive.Render(" select  ") +
		menuKeyHint.Render("q") + menuInactive.Render(" quit") + "\n")
	return b.String()
}

func (a app) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(a.selected.Name)) + "\n")
	b.WriteString("    " + menuSubtitle.Render(a.selected.Class) + "\n")
	b.WriteString("    " + Separator(25) + "\n\n")
	for i, name := range configParamNames {
		valStr := fmt.Sprintf("%10.3f", a.params[name])
		if a.editing && i == a.paramCursor {
			valStr = fmt.Sprintf("%10s", a.editBuf+"_")
		}
		if i == a.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				menuMarker.Render("▸"),
				menuActive.Render(fmt.Sprintf("%-10s", name)),
				menuDetail.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				menuInactive.Render(fmt.Sprintf("  %-10s", name)),
				menuDimmed.Render(valStr)))
		}
	}
	b.WriteString("\n    " + menuKeyHint.Render("j/k") + menuInactive.Render(" select  ") +
		menuKeyHint.Render("enter") + menuInactive.Render(" edit  ") +
		menuKeyHint.Render("s") + menuInactive.Render(" start  ") +
		menuKeyHint.Render("esc") + menuInactive.Render(" back") + "\n")
	return b.String()
}

// RunInteractive starts the full-screen interactive session.
func RunInteractive(lib *library.Library) error {
	_, err := tea.NewProgram(NewApp(lib), tea.WithAltScreen()).Run()
	return err
}
