package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/ristakaen/PlasmaTransition/internal/config"
	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
	"github.com/ristakaen/PlasmaTransition/internal/integrators"
	"github.com/ristakaen/PlasmaTransition/internal/physics"
	"github.com/ristakaen/PlasmaTransition/internal/plot"
	"github.com/ristakaen/PlasmaTransition/internal/storage"
	"github.com/ristakaen/PlasmaTransition/internal/sweep"
	"github.com/ristakaen/PlasmaTransition/internal/viz"
)

var (
	dataDir    string
	configFile string

	alpha    float64
	nu       float64
	mu       float64
	source   float64
	n0       float64
	e0       float64
	v0       float64
	lower    float64
	upper    float64
	points   int
	window   int
	tol      float64
	fallback float64
	strict   bool

	sList   []float64
	pngPath string
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		}),
	))

	rootCmd := &cobra.Command{
		Use:   "plasmatransition",
		Short: "three-field confinement transition integrator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plasmatransition", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate one trajectory",
		RunE:  runOne,
	}
	addModelFlags(runCmd)
	addGridFlags(runCmd)
	runCmd.Flags().StringVar(&pngPath, "png", "", "also write a trajectory plot PNG")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the source strength over a list",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	addGridFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sList, "s-list", nil, "source strengths (default from config)")
	sweepCmd.Flags().StringVar(&pngPath, "png", "", "write the final-V vs S plot PNG")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write a PNG instead of a terminal plot")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate with a live terminal view",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	addGridFlags(liveCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "flow drive coefficient")
	cmd.Flags().Float64Var(&nu, "nu", config.DefaultNu, "turbulence saturation coefficient")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "flow damping coefficient")
	cmd.Flags().Float64Var(&source, "s", config.DefaultSource, "particle source strength")
	cmd.Flags().Float64Var(&n0, "n0", 0, "initial density gradient (default derived from parameters)")
	cmd.Flags().Float64Var(&e0, "e0", 0, "initial fluctuation level (default derived from parameters)")
	cmd.Flags().Float64Var(&v0, "v0", 0, "initial flow-shear gradient (default derived from parameters)")
}

func addGridFlags(cmd *cobra.Command) {
	run := dynamics.DefaultConfig()
	cmd.Flags().Float64Var(&lower, "lower", run.Lower, "grid lower bound (compactified)")
	cmd.Flags().Float64Var(&upper, "upper", run.Upper, "grid upper bound (compactified, below 1)")
	cmd.Flags().IntVar(&points, "points", run.Points, "grid point count")
	cmd.Flags().IntVar(&window, "window", 0, "settled-test window (0 = points/20000)")
	cmd.Flags().Float64Var(&tol, "tol", run.Tolerance, "settled-test tolerance")
	cmd.Flags().Float64Var(&fallback, "fallback", run.Fallback, "equilibrium time when never settled")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop on the first non-finite state")
}

// loadConfig merges, in increasing precedence: defaults, the config file,
// and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("alpha") {
		cfg.Params.Alpha = alpha
	}
	if f.Changed("nu") {
		cfg.Params.Nu = nu
	}
	if f.Changed("mu") {
		cfg.Params.Mu = mu
	}
	if f.Changed("s") {
		cfg.Params.S = source
	}
	if f.Changed("n0") || f.Changed("e0") || f.Changed("v0") {
		cfg.Init.Auto = false
		if f.Changed("n0") {
			cfg.Init.N0 = n0
		}
		if f.Changed("e0") {
			cfg.Init.E0 = e0
		}
		if f.Changed("v0") {
			cfg.Init.V0 = v0
		}
	}
	if f.Changed("lower") {
		cfg.Grid.Lower = lower
	}
	if f.Changed("upper") {
		cfg.Grid.Upper = upper
	}
	if f.Changed("points") {
		cfg.Grid.Points = points
	}
	if f.Changed("window") {
		cfg.Equilibrium.Window = window
	}
	if f.Changed("tol") {
		cfg.Equilibrium.Tolerance = tol
	}
	if f.Changed("fallback") {
		cfg.Equilibrium.Fallback = fallback
	}
	if f.Changed("strict") {
		cfg.Strict = strict
	}
	return cfg, nil
}

func initialState(cfg *config.Config, dyn *physics.ThreeField) dynamics.State {
	if cfg.Init.Auto {
		return dyn.DefaultState()
	}
	return dynamics.State{cfg.Init.N0, cfg.Init.E0, cfg.Init.V0}
}

func runOne(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dyn := physics.NewThreeField(cfg.Params.Alpha, cfg.Params.Nu, cfg.Params.Mu, cfg.Params.S)
	x0 := initialState(cfg, dyn)
	drv := dynamics.NewDriver(dyn, integrators.NewRK4())

	slog.Info("integrating", "s", cfg.Params.S, "points", cfg.Grid.Points)
	start := time.Now()

	res, err := drv.Run(context.Background(), x0, cfg.RunConfig())
	if err != nil {
		return err
	}

	slog.Info("run complete",
		"elapsed", time.Since(start),
		"converged", res.Converged,
		"diverged", res.Diverged,
	)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Alpha:  cfg.Params.Alpha,
		Nu:     cfg.Params.Nu,
		Mu:     cfg.Params.Mu,
		S:      cfg.Params.S,
		N0:     x0[0],
		E0:     x0[1],
		V0:     x0[2],
		Lower:  cfg.Grid.Lower,
		Upper:  cfg.Grid.Upper,
		Points: cfg.Grid.Points,
	}, res)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n\n", runID)
	fmt.Print(storage.Summary(res))

	if pngPath != "" {
		title := fmt.Sprintf("Three-field transition, S = %.3g", cfg.Params.S)
		if err := plot.SaveTrajectory(pngPath, title, res); err != nil {
			return err
		}
		slog.Info("wrote trajectory plot", "path", pngPath)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	values := cfg.Sweep.SValues
	if cmd.Flags().Changed("s-list") {
		values = sList
	}
	if len(values) == 0 {
		return fmt.Errorf("no source strengths to sweep")
	}

	base := sweep.Params{
		Alpha: cfg.Params.Alpha,
		Nu:    cfg.Params.Nu,
		Mu:    cfg.Params.Mu,
	}
	specs := sweep.ForSource(base, values)

	slog.Info("sweeping", "runs", len(specs), "points", cfg.Grid.Points)
	start := time.Now()

	outcomes, err := sweep.Run(context.Background(), specs, cfg.RunConfig())
	if err != nil {
		return err
	}
	slog.Info("sweep complete", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "S\tEQ TIME\tCONVERGED\tFINAL V")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%.3g\t%.6g\t%t\t%.3g\n", o.S, o.EquilibriumTime, o.Converged, o.FinalV)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	sweepID, err := st.SaveSweep(outcomes)
	if err != nil {
		return err
	}
	fmt.Printf("\nsweep id: %s\n", sweepID)

	if pngPath != "" {
		finalV := make([]float64, len(outcomes))
		for i, o := range outcomes {
			finalV[i] = o.FinalV
		}
		if err := plot.SaveSweep(pngPath, values, finalV); err != nil {
			return err
		}
		slog.Info("wrote sweep plot", "path", pngPath)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tS\tTIME\tEQ TIME\tCONVERGED\tFINAL V")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%.3g\t%s\t%.6g\t%t\t%.3g\n",
			run.ID,
			run.S,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.EquilibriumTime,
			run.Converged,
			run.FinalV,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, n, e, v, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	res := &dynamics.Result{
		Times:           times,
		N:               n,
		E:               e,
		V:               v,
		EquilibriumTime: meta.EquilibriumTime,
		Converged:       meta.Converged,
	}

	if pngPath != "" {
		title := fmt.Sprintf("Three-field transition, S = %.3g", meta.S)
		return plot.SaveTrajectory(pngPath, title, res)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("equilibrium time: %.6g (converged: %t)\n\n", meta.EquilibriumTime, meta.Converged)

	for _, g := range []struct {
		name string
		data []float64
	}{{"N (density gradient)", n}, {"E (fluctuation level)", e}, {"V (flow-shear gradient)", v}} {
		graph := asciigraph.Plot(g.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(g.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dyn := physics.NewThreeField(cfg.Params.Alpha, cfg.Params.Nu, cfg.Params.Mu, cfg.Params.S)
	x0 := initialState(cfg, dyn)

	m := viz.NewModel(dyn, integrators.NewRK4(), x0, cfg.RunConfig())
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
