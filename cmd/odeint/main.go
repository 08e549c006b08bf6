package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mseri/owl-ode/internal/config"
	"github.com/mseri/owl-ode/internal/registry"
	"github.com/mseri/owl-ode/internal/storage"
	"github.com/mseri/owl-ode/internal/tui"
	"github.com/mseri/owl-ode/metrics"
	"github.com/mseri/owl-ode/ode"
)

var (
	dataDir    string
	t0         float64
	dt         float64
	duration   float64
	stepper    string
	tolerance  float64
	initState  string
	configFile string
	label      string
	component  int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odeint",
		Short: "ODE initial value problem solver",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odeint", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().Float64Var(&t0, "t0", 0.0, "start time")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size (initial step for adaptive steppers)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&stepper, "stepper", "rk4", "stepper (euler|midpoint|rk4|rk23|rk45, or a symplectic one for Hamiltonian models)")
	runCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "error tolerance (adaptive steppers only)")
	runCmd.Flags().StringVar(&initState, "state", "", "initial state, comma separated")
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&label, "label", "", "run label")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(args[0], "")
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "integrate with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	liveCmd.Flags().StringVar(&stepper, "stepper", "rk4", "stepper")
	liveCmd.Flags().StringVar(&initState, "state", "", "initial state, comma separated")
	liveCmd.Flags().IntVar(&component, "component", 0, "state component to graph")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models and steppers",
		Run: func(cmd *cobra.Command, args []string) {
			reg := registry.New()
			fmt.Printf("models: %s\n", strings.Join(reg.ModelNames(), ", "))
			fmt.Printf("steppers: %s\n", strings.Join(reg.StepperNames(), ", "))
			fmt.Printf("symplectic: %s\n", strings.Join(reg.SymplecticNames(), ", "))
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runModel(cmd *cobra.Command, args []string) error {
	name := args[0]

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// CLI flags override the scenario file.
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("t0") {
			t0 = cfg.T0
		}
		if !cmd.Flags().Changed("stepper") {
			stepper = cfg.Stepper
		}
		if !cmd.Flags().Changed("tol") && cfg.Tolerance > 0 {
			tolerance = cfg.Tolerance
		}
		if !cmd.Flags().Changed("state") && len(cfg.InitState) > 0 {
			initState = joinFloats(cfg.InitState)
		}
		if label == "" {
			label = cfg.Label
		}
	}

	reg := registry.New()
	model, err := reg.Model(name)
	if err != nil {
		return err
	}

	// Symplectic steppers live in their own namespace and need the split
	// Hamiltonian form of the model.
	var step ode.Stepper
	var symStep ode.SymplecticStepper
	step, err = reg.Stepper(stepper)
	if err != nil {
		symStep, err = reg.SymplecticStepper(stepper)
		if err != nil {
			return fmt.Errorf("unknown stepper %q (steppers: %s; symplectic: %s)",
				stepper, strings.Join(reg.StepperNames(), ", "), strings.Join(reg.SymplecticNames(), ", "))
		}
		if model.Separable == nil {
			return fmt.Errorf("model %q is not a separable Hamiltonian system; symplectic steppers need one of: %s",
				name, strings.Join(separableModels(reg), ", "))
		}
	}

	y0 := model.Init
	if initState != "" {
		y0, err = parseState(initState)
		if err != nil {
			return err
		}
	}

	counter := metrics.NewStepCounter()
	cfg := ode.DefaultConfig()
	cfg.Tolerance = tolerance
	cfg.Observers = append(cfg.Observers, counter)

	var drift *metrics.EnergyDrift
	if model.Energy != nil {
		drift = metrics.NewEnergyDrift(model.Energy)
		cfg.Observers = append(cfg.Observers, drift)
	}

	spec := ode.FixedHorizon{T0: t0, Duration: duration, Dt: dt}

	start := time.Now()
	var traj *ode.Trajectory
	if symStep != nil {
		if len(y0)%2 != 0 {
			return fmt.Errorf("state of size %d cannot be split into (q, p) halves", len(y0))
		}
		half := len(y0) / 2
		ptraj, err := ode.SymplecticOdeint(context.Background(), symStep, *model.Separable, y0[:half], y0[half:], spec, cfg)
		if err != nil {
			return err
		}
		traj = ptraj.Packed()
	} else {
		traj, err = ode.Odeint(context.Background(), step, model.RHS, y0, spec, cfg)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Model:    name,
		Stepper:  stepper,
		T0:       t0,
		Dt:       dt,
		Duration: duration,
		Label:    label,
	}, traj)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("odeint run · %s · %s", name, stepper)))
	printRow("run id", runID)
	printRow("elapsed", elapsed.String())
	printRow("points", strconv.Itoa(traj.Len()))
	tEnd, yEnd := traj.Last()
	printRow("final t", fmt.Sprintf("%.6f", tEnd))
	printRow("final y", formatState(yEnd))
	if drift != nil {
		printRow("energy drift", fmt.Sprintf("%.3e", drift.Value()))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	reg := registry.New()
	model, err := reg.Model(args[0])
	if err != nil {
		return err
	}
	step, err := reg.Stepper(stepper)
	if err != nil {
		return err
	}
	y0 := model.Init
	if initState != "" {
		y0, err = parseState(initState)
		if err != nil {
			return err
		}
	}
	if component < 0 || component >= len(y0) {
		return fmt.Errorf("component %d out of range for state of size %d", component, len(y0))
	}
	return tui.Run(model.Name, step, model.RHS, y0, dt, component)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSTEPPER\tTIME\tDURATION\tDT\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4f\t%d\n",
			run.ID,
			run.Model,
			run.Stepper,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Points,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("run %s · %d points", runID, traj.Len())))

	dim := len(traj.States[0])
	const maxPlots = 6
	if dim > maxPlots {
		dim = maxPlots
	}
	for i := 0; i < dim; i++ {
		graph := asciigraph.Plot(traj.Component(i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("y%d vs time", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func separableModels(reg *registry.Registry) []string {
	var names []string
	for _, name := range reg.ModelNames() {
		if m, err := reg.Model(name); err == nil && m.Separable != nil {
			names = append(names, name)
		}
	}
	return names
}

func parseState(s string) (ode.State, error) {
	parts := strings.Split(s, ",")
	out := make(ode.State, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad state component %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func formatState(y ode.State) string {
	parts := make([]string, len(y))
	for i, v := range y {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func printRow(key, value string) {
	fmt.Println(keyStyle.Render(key) + valStyle.Render(value))
}
