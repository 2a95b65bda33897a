package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"pharmsim/internal/pharma"
)

// RenderCurve plots a single curve. Doses are already log-spaced, so the
// x-axis reads as log-dose.
func RenderCurve(c pharma.Curve, width, height int, caption string) string {
	if len(c) == 0 {
		return ""
	}
	graph := asciigraph.Plot(c.Responses(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graph + "\n" + DoseAxis(c, width)
}

// RenderOverlay plots an antagonized curve over its control.
func RenderOverlay(control, blocked pharma.Curve, width, height int, caption string) string {
	if len(control) == 0 || len(blocked) == 0 {
		return ""
	}
	graph := asciigraph.PlotMany(
		[][]float64{control.Responses(), blocked.Responses()},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("control", "with antagonist"),
	)
	return graph + "\n" + DoseAxis(control, width)
}

// DoseAxis renders the x-axis annotation for a log-dose plot.
func DoseAxis(c pharma.Curve, width int) string {
	if len(c) == 0 {
		return ""
	}
	lo := fmt.Sprintf("%g", c[0].Dose)
	hi := fmt.Sprintf("%g", c[len(c)-1].Dose)
	label := "log dose"
	pad := width - len(lo) - len(hi) - len(label)
	if pad < 2 {
		return fmt.Sprintf("%s .. %s (%s)", lo, hi, label)
	}
	left := strings.Repeat(" ", pad/2)
	right := strings.Repeat(" ", pad-pad/2)
	return lo + left + label + right + hi
}
