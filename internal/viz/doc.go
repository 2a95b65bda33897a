// Package viz provides terminal rendering for dose-response curves.
//
// The package has two layers:
//
//   - plain ASCII plots ([RenderCurve], [RenderOverlay]) for one-shot
//     CLI output, drawn with asciigraph on a log-dose grid
//   - an interactive Bubble Tea TUI ([RunInteractive]) with a drug menu,
//     a parameter editor, and a live-tuned curve view
//
// # Key Bindings (live view)
//
//	Tab   - Cycle parameters
//	Up/K  - Increase selected parameter (+5%)
//	Down/J- Decrease selected parameter (-5%)
//	[ / ] - Shrink / widen the dose range
//	R     - Reset parameters
//	Q     - Quit
package viz
