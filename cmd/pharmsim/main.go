package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pharmsim/internal/assay"
	"pharmsim/internal/config"
	"pharmsim/internal/interaction"
	"pharmsim/internal/library"
	"pharmsim/internal/storage"
	"pharmsim/internal/theory"
	"pharmsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	drugFile   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// curve / compare / live flags
	modelName string
	mechanism string
	doseMin   float64
	doseMax   float64
	points    int
	baseline  float64
	emax      float64
	ec50      float64
	hillN     float64
	antConc   float64
	antKi     float64
	blocked   float64
	preset    string
	noSave    bool
	showTable bool

	// check flags
	age    int
	kidney bool
	liver  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pharmsim",
		Short: "dose-response and drug interaction lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") || cfg.DataDir == "" {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("drug-file") {
				cfg.DrugFile = drugFile
			}
			if verbose {
				cfg.Verbose = true
			}
			logger, err = newLogger(cfg.Verbose)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := loadLibrary()
			if err != nil {
				return err
			}
			return viz.RunInteractive(lib)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&drugFile, "drug-file", "", "user drug library (yaml, layered over built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	curveCmd := &cobra.Command{
		Use:   "curve [drug]",
		Short: "run a dose-response assay",
		Args:  cobra.ExactArgs(1),
		RunE:  runCurve,
	}
	addAssayFlags(curveCmd)
	curveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	curveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	curveCmd.Flags().BoolVar(&showTable, "table", false, "print the sampled data table")

	compareCmd := &cobra.Command{
		Use:   "compare [agonist] [antagonist]",
		Short: "overlay control and antagonized curves",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	addAssayFlags(compareCmd)

	checkCmd := &cobra.Command{
		Use:   "check [drugA] [drugB]",
		Short: "check a drug pair for interactions",
		Args:  cobra.ExactArgs(2),
		RunE:  runCheck,
	}
	checkCmd.Flags().IntVar(&age, "age", 40, "patient age")
	checkCmd.Flags().BoolVar(&kidney, "kidney-impaired", false, "patient has impaired kidney function")
	checkCmd.Flags().BoolVar(&liver, "liver-impaired", false, "patient has impaired liver function")

	drugsCmd := &cobra.Command{
		Use:   "drugs",
		Short: "list the drug library",
		RunE:  listDrugs,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [drug]",
		Short: "list available presets for a drug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for drug: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [drug]",
		Short: "tune a dose-response curve interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addAssayFlags(liveCmd)

	wizardCmd := &cobra.Command{
		Use:   "wizard",
		Short: "guided assay setup",
		RunE:  runWizard,
	}

	theoryCmd := &cobra.Command{
		Use:   "theory [topic]",
		Short: "read the built-in pharmacology notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("topics:")
				for _, t := range theory.Topics() {
					fmt.Printf("  %s\n", t)
				}
				return nil
			}
			out, err := theory.Render(args[0], cfg.PlotWidth)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	rootCmd.AddCommand(curveCmd, compareCmd, checkCmd, drugsCmd, presetsCmd,
		runsCmd, plotCmd, exportJSONCmd, exportCSVCmd, liveCmd, wizardCmd, theoryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addAssayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&modelName, "model", "hill", "response model (hill, emax)")
	cmd.Flags().StringVar(&mechanism, "mechanism", "none", "antagonism mechanism (none, competitive, noncompetitive)")
	cmd.Flags().Float64Var(&doseMin, "dose-min", 0, "lowest dose (0 with dose-max 0 uses the library range)")
	cmd.Flags().Float64Var(&doseMax, "dose-max", 0, "highest dose")
	cmd.Flags().IntVar(&points, "points", 0, "samples per curve")
	cmd.Flags().Float64Var(&baseline, "baseline", 0, "baseline override")
	cmd.Flags().Float64Var(&emax, "emax", 0, "emax override")
	cmd.Flags().Float64Var(&ec50, "ec50", 0, "ec50 override")
	cmd.Flags().Float64Var(&hillN, "hill", 0, "hill coefficient override")
	cmd.Flags().Float64Var(&antConc, "conc", 0, "antagonist concentration (competitive)")
	cmd.Flags().Float64Var(&antKi, "ki", 0, "antagonist Ki (competitive)")
	cmd.Flags().Float64Var(&blocked, "blocked", 0, "fraction of receptors blocked (noncompetitive)")
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		zcfg.Development = true
	}
	return zcfg.Build()
}

func loadLibrary() (*library.Library, error) {
	if cfg.DrugFile != "" {
		return library.LoadWithFile(cfg.DrugFile)
	}
	return library.Load()
}

// assayConfig builds the assay from the flags a command received, applying
// a preset first when one is named.
func assayConfig(cmd *cobra.Command, drug string) (assay.Config, error) {
	ac := assay.Config{
		Drug:      drug,
		Model:     modelName,
		Mechanism: mechanism,
		DoseMin:   doseMin,
		DoseMax:   doseMax,
		Points:    cfg.Points,
		Mech: assay.Mechanism{
			AntagonistConc:  antConc,
			Ki:              antKi,
			FractionBlocked: blocked,
		},
	}

	if preset != "" {
		p := config.GetPreset(drug, preset)
		if p == nil {
			return ac, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(drug))
		}
		ac.Model = p.Model
		ac.Mechanism = p.Mechanism
		ac.DoseMin = p.DoseMin
		ac.DoseMax = p.DoseMax
		ac.Points = p.Points
		ac.Mech = assay.Mechanism{
			AntagonistConc:  p.AntagonistConc,
			Ki:              p.Ki,
			FractionBlocked: p.FractionBlocked,
		}
	}

	// Explicit flags override the preset.
	if cmd.Flags().Changed("model") {
		ac.Model = modelName
	}
	if cmd.Flags().Changed("mechanism") {
		ac.Mechanism = mechanism
	}
	if cmd.Flags().Changed("dose-min") {
		ac.DoseMin = doseMin
	}
	if cmd.Flags().Changed("dose-max") {
		ac.DoseMax = doseMax
	}
	if cmd.Flags().Changed("points") {
		ac.Points = points
	}

	ac.Overrides = make(map[string]float64)
	for name, flagName := range map[string]string{
		"baseline": "baseline", "emax": "emax", "ec50": "ec50", "hill": "hill",
	} {
		if cmd.Flags().Changed(flagName) {
			v, _ := cmd.Flags().GetFloat64(flagName)
			ac.Overrides[name] = v
		}
	}

	return ac, nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary()
	if err != nil {
		return err
	}

	ac, err := assayConfig(cmd, args[0])
	if err != nil {
		return err
	}

	res, err := assay.Run(lib, assay.NewRegistry(), ac)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", res.Drug.Name, res.Drug.Class)
	if res.Control != nil {
		fmt.Println(viz.RenderOverlay(res.Control, res.Samples,
			cfg.PlotWidth, cfg.PlotHeight, captionFor(res.Drug, ac.Mechanism)))
	} else {
		fmt.Println(viz.RenderCurve(res.Samples,
			cfg.PlotWidth, cfg.PlotHeight, captionFor(res.Drug, ac.Mechanism)))
	}

	printMetrics(res.Metrics, res.Drug.Unit)

	if showTable {
		fmt.Println()
		if err := printSamples(res); err != nil {
			return err
		}
	}

	if noSave {
		return nil
	}

	st := storage.New(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Drug:      res.Drug.Name,
		Model:     ac.Model,
		Mechanism: ac.Mechanism,
		DoseMin:   res.Samples[0].Dose,
		DoseMax:   res.Samples[len(res.Samples)-1].Dose,
		Points:    len(res.Samples),
		Unit:      res.Drug.Unit,
		Params:    modelParams(res.Drug, ac.Overrides),
		Metrics:   res.Metrics,
	}, res.Samples, res.Control)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary()
	if err != nil {
		return err
	}

	antagonist, err := lib.Get(args[1])
	if err != nil {
		return err
	}

	ac, err := assayConfig(cmd, args[0])
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("mechanism") {
		ac.Mechanism = "competitive"
	}
	if ac.Mechanism == "none" {
		return fmt.Errorf("compare needs an antagonism mechanism")
	}
	if ac.Mechanism == "competitive" {
		if !cmd.Flags().Changed("ki") {
			if !antagonist.IsAntagonist() {
				return fmt.Errorf("%s has no Ki in the library; pass --ki", antagonist.Name)
			}
			ac.Mech.Ki = antagonist.Ki
		}
		if !cmd.Flags().Changed("conc") {
			// One Ki-worth of antagonist, a twofold rightward shift.
			ac.Mech.AntagonistConc = ac.Mech.Ki
		}
	}
	if ac.Mechanism == "noncompetitive" && !cmd.Flags().Changed("blocked") {
		ac.Mech.FractionBlocked = 0.4
	}

	res, err := assay.Run(lib, assay.NewRegistry(), ac)
	if err != nil {
		return err
	}

	fmt.Printf("%s vs %s (%s antagonism)\n\n", res.Drug.Name, antagonist.Name, ac.Mechanism)
	fmt.Println(viz.RenderOverlay(res.Control, res.Samples,
		cfg.PlotWidth, cfg.PlotHeight,
		fmt.Sprintf("%s + %s", res.Drug.Name, antagonist.Name)))
	printMetrics(res.Metrics, res.Drug.Unit)
	return nil
}

func captionFor(d library.Drug, mechanism string) string {
	if mechanism != "" && mechanism != "none" {
		return fmt.Sprintf("%s + %s block", d.Name, mechanism)
	}
	return fmt.Sprintf("%s response vs log dose", d.Name)
}

func modelParams(d library.Drug, overrides map[string]float64) map[string]float64 {
	m := d.HillModel()
	for name, v := range overrides {
		m.SetParam(name, v)
	}
	return m.Params()
}

func printMetrics(metrics map[string]float64, unit string) {
	if len(metrics) == 0 {
		return
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		suffix := ""
		if name == "ec50_estimated" {
			suffix = " " + unit
		}
		fmt.Printf("  %-16s %.4g%s\n", name, metrics[name], suffix)
	}
}

func printSamples(res *assay.Result) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	if res.Control != nil {
		fmt.Fprintf(w, "DOSE (%s)\tCONTROL\tRESPONSE\t\n", res.Drug.Unit)
	} else {
		fmt.Fprintf(w, "DOSE (%s)\tRESPONSE\t\n", res.Drug.Unit)
	}
	for i, s := range res.Samples {
		if res.Control != nil && i < len(res.Control) {
			fmt.Fprintf(w, "%.4g\t%.2f\t%.2f\t\n", s.Dose, res.Control[i].Response, s.Response)
		} else {
			fmt.Fprintf(w, "%.4g\t%.2f\t\n", s.Dose, s.Response)
		}
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	checker, err := interaction.NewChecker()
	if err != nil {
		return err
	}

	res := checker.Check(args[0], args[1], interaction.Patient{
		Age:            age,
		KidneyImpaired: kidney,
		LiverImpaired:  liver,
	})

	sevStyle := viz.SeverityMinorStyle
	switch res.Severity {
	case interaction.SeverityModerate:
		sevStyle = viz.SeverityModerateStyle
	case interaction.SeveritySevere:
		sevStyle = viz.SeveritySevereStyle
	}

	fmt.Printf("%s + %s\n\n", res.DrugA, res.DrugB)
	fmt.Printf("severity:  %s\n", sevStyle.Render(strings.ToUpper(res.Severity.String())))
	fmt.Printf("effect:    %s\n", res.Effect)
	fmt.Printf("toxicity:  %s %d/100\n", viz.ToxicityBar(res.ToxicityScore, 20), res.ToxicityScore)
	for _, note := range res.Notes {
		fmt.Printf("note:      %s\n", note)
	}
	return nil
}

func listDrugs(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLASS\tUNIT\tEC50\tEMAX\tHILL\tRANGE")
	for _, d := range lib.List() {
		kind := d.Class
		if d.IsAntagonist() {
			kind += fmt.Sprintf(" (antagonist, ki=%.3g)", d.Ki)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3g\t%.3g\t%.3g\t%g-%g\n",
			d.Name, kind, d.Unit, d.EC50, d.Emax, d.Hill, d.DoseMin, d.DoseMax)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDRUG\tMODEL\tMECHANISM\tTIME\tRANGE\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%g-%g\t%d\n",
			run.ID,
			run.Drug,
			run.Model,
			run.Mechanism,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.DoseMin,
			run.DoseMax,
			run.Points,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir, logger)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	samples, control, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("drug: %s (%s)\n", meta.Drug, meta.Mechanism)
	fmt.Printf("samples: %d\n\n", len(samples))

	caption := fmt.Sprintf("%s response vs log dose", meta.Drug)
	if control != nil {
		fmt.Println(viz.RenderOverlay(control, samples, cfg.PlotWidth, cfg.PlotHeight, caption))
	} else {
		fmt.Println(viz.RenderCurve(samples, cfg.PlotWidth, cfg.PlotHeight, caption))
	}

	printMetrics(meta.Metrics, meta.Unit)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir, logger)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, control, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, samples, control)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir, logger)
	samples, control, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"dose", "response"}
	if control != nil {
		header = append(header, "control")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Dose, 'f', 6, 64),
			strconv.FormatFloat(s.Response, 'f', 6, 64),
		}
		if control != nil && i < len(control) {
			row = append(row, strconv.FormatFloat(control[i].Response, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary()
	if err != nil {
		return err
	}

	drug, err := lib.Get(args[0])
	if err != nil {
		return err
	}

	model := drug.HillModel()
	for name, flagName := range map[string]string{
		"baseline": "baseline", "emax": "emax", "ec50": "ec50", "hill": "hill",
	} {
		if cmd.Flags().Changed(flagName) {
			v, _ := cmd.Flags().GetFloat64(flagName)
			if err := model.SetParam(name, v); err != nil {
				return err
			}
		}
	}

	lo, hi := drug.DoseMin, drug.DoseMax
	if cmd.Flags().Changed("dose-min") {
		lo = doseMin
	}
	if cmd.Flags().Changed("dose-max") {
		hi = doseMax
	}
	n := cfg.Points
	if cmd.Flags().Changed("points") {
		n = points
	}

	return viz.RunLive(drug.Name, drug.Unit, model, lo, hi, n)
}
