package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pharmsim/internal/pharma"
)

const (
	defaultPlotWidth  = 70
	defaultPlotHeight = 14
)

// TuneModel is the live curve view: the user tunes Hill parameters from
// the keyboard and the curve recomputes on every change.
type TuneModel struct {
	title         string
	unit          string
	model         *pharma.Hill
	doseMin       float64
	doseMax       float64
	points        int
	initialParams map[string]float64
	initialRange  [2]float64
	paramKeys     []string
	selected      int
	curve         pharma.Curve
	err           error
	width         int
}

// NewTuneModel builds the live view around a Hill model.
func NewTuneModel(title, unit string, model *pharma.Hill, doseMin, doseMax float64, points int) TuneModel {
	params := model.Params()
	keys := make([]string, 0, len(params))
	initial := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initial[k] = v
	}
	sort.Strings(keys)

	m := TuneModel{
		title:         title,
		unit:          unit,
		model:         model,
		doseMin:       doseMin,
		doseMax:       doseMax,
		points:        points,
		initialParams: initial,
		initialRange:  [2]float64{doseMin, doseMax},
		paramKeys:     keys,
		width:         defaultPlotWidth,
	}
	m.recompute()
	return m
}

func (m TuneModel) Init() tea.Cmd { return nil }

func (m TuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 40 {
			m.width = msg.Width - 30
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "[":
			m.doseMax /= 10
			if m.doseMax <= m.doseMin {
				m.doseMax *= 10
			}
			m.recompute()
		case "]":
			m.doseMax *= 10
			m.recompute()
		case "r":
			m.reset()
		}
	}
	return m, nil
}

func (m *TuneModel) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.model.Params()[key]
	if val == 0 {
		// Multiplicative tuning cannot leave zero; nudge instead.
		val = 0.01
		if factor < 1 {
			val = -0.01
		}
		m.model.SetParam(key, val)
		m.recompute()
		return
	}
	m.model.SetParam(key, val*factor)
	m.recompute()
}

func (m *TuneModel) reset() {
	for k, v := range m.initialParams {
		m.model.SetParam(k, v)
	}
	m.doseMin, m.doseMax = m.initialRange[0], m.initialRange[1]
	m.selected = 0
	m.recompute()
}

func (m *TuneModel) recompute() {
	curve, err := pharma.Compute(m.model, m.doseMin, m.doseMax, m.points)
	m.err = err
	if err == nil {
		m.curve = curve
	}
}

func (m TuneModel) View() string {
	var stats strings.Builder
	stats.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n\n")
	stats.WriteString(labelStyle.Render("Range") +
		valueStyle.Render(fmt.Sprintf("%g–%g %s", m.doseMin, m.doseMax, m.unit)) + "\n")
	stats.WriteString(labelStyle.Render("Points") +
		valueStyle.Render(fmt.Sprintf("%d", m.points)) + "\n")

	if ec50, err := pharma.EstimateEC50(m.curve); err == nil {
		stats.WriteString(labelStyle.Render("EC50 est.") +
			valueStyle.Render(fmt.Sprintf("%.3g %s", ec50, m.unit)) + "\n")
	}

	stats.WriteString("\nPARAMETERS\n")
	params := m.model.Params()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %10.3f", k, params[k])
		if i == m.selected {
			stats.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			stats.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.err != nil {
		stats.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}

	stats.WriteString(helpStyle.Render("\nTab:Select ↑↓:Tune [ ]:Range\nR:Reset Q:Quit"))

	plot := graphStyle.Render(RenderCurve(m.curve, m.width, defaultPlotHeight, "response vs log dose"))
	return lipgloss.JoinHorizontal(lipgloss.Top, plot, statsStyle.Render(stats.String()))
}

// RunLive starts the live view as a standalone program.
func RunLive(title, unit string, model *pharma.Hill, doseMin, doseMax float64, points int) error {
	p := tea.NewProgram(NewTuneModel(title, unit, model, doseMin, doseMax, points))
	_, err := p.Run()
	return err
}
