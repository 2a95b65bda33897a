package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"pharmsim/internal/assay"
	"pharmsim/internal/viz"
)

// runWizard walks the user through an assay setup with forms, then runs
// it and plots the result.
func runWizard(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary()
	if err != nil {
		return err
	}
	reg := assay.NewRegistry()

	drugOptions := make([]huh.Option[string], 0)
	for _, d := range lib.List() {
		label := fmt.Sprintf("%s (%s)", d.Name, d.Class)
		drugOptions = append(drugOptions, huh.NewOption(label, strings.ToLower(d.Name)))
	}

	var drugName string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Drug").
			Options(drugOptions...).
			Value(&drugName),
	)).Run(); err != nil {
		return err
	}

	drug, err := lib.Get(drugName)
	if err != nil {
		return err
	}

	ac := assay.Config{
		Drug:   drugName,
		Points: cfg.Points,
	}

	modelOptions := make([]huh.Option[string], 0)
	for _, name := range reg.ListModels() {
		modelOptions = append(modelOptions, huh.NewOption(name, name))
	}
	mechOptions := make([]huh.Option[string], 0)
	for _, name := range reg.ListMechanisms() {
		mechOptions = append(mechOptions, huh.NewOption(name, name))
	}

	lo := strconv.FormatFloat(drug.DoseMin, 'g', -1, 64)
	hi := strconv.FormatFloat(drug.DoseMax, 'g', -1, 64)
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Response model").Options(modelOptions...).Value(&ac.Model),
		huh.NewSelect[string]().Title("Antagonism mechanism").Options(mechOptions...).Value(&ac.Mechanism),
		huh.NewInput().Title(fmt.Sprintf("Lowest dose (%s)", drug.Unit)).Value(&lo).Validate(validateNonNegativeFloat),
		huh.NewInput().Title(fmt.Sprintf("Highest dose (%s)", drug.Unit)).Value(&hi).Validate(validatePositiveFloat),
	)).Run(); err != nil {
		return err
	}
	ac.DoseMin, _ = strconv.ParseFloat(lo, 64)
	ac.DoseMax, _ = strconv.ParseFloat(hi, 64)

	switch ac.Mechanism {
	case "competitive":
		conc, ki := "1.0", "1.0"
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Antagonist concentration").Value(&conc).Validate(validatePositiveFloat),
			huh.NewInput().Title("Antagonist Ki").Value(&ki).Validate(validatePositiveFloat),
		)).Run(); err != nil {
			return err
		}
		ac.Mech.AntagonistConc, _ = strconv.ParseFloat(conc, 64)
		ac.Mech.Ki, _ = strconv.ParseFloat(ki, 64)
	case "noncompetitive":
		frac := "0.4"
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Fraction of receptors blocked (0-1)").Value(&frac).Validate(validateFraction),
		)).Run(); err != nil {
			return err
		}
		ac.Mech.FractionBlocked, _ = strconv.ParseFloat(frac, 64)
	}

	res, err := assay.Run(lib, reg, ac)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s (%s)\n\n", res.Drug.Name, res.Drug.Class)
	if res.Control != nil {
		fmt.Println(viz.RenderOverlay(res.Control, res.Samples,
			cfg.PlotWidth, cfg.PlotHeight, captionFor(res.Drug, ac.Mechanism)))
	} else {
		fmt.Println(viz.RenderCurve(res.Samples,
			cfg.PlotWidth, cfg.PlotHeight, captionFor(res.Drug, ac.Mechanism)))
	}
	printMetrics(res.Metrics, res.Drug.Unit)
	return nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateFraction(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("must be in [0, 1]")
	}
	return nil
}
