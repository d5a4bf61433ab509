package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/armsim/internal/arm"
	"github.com/san-kum/armsim/internal/config"
	"github.com/san-kum/armsim/internal/control"
	"github.com/san-kum/armsim/internal/kinematics"
	"github.com/san-kum/armsim/internal/metrics"
	"github.com/san-kum/armsim/internal/sim"
	"github.com/san-kum/armsim/internal/storage"
	"github.com/san-kum/armsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	duration   float64
	dt         float64
	anglesFlag string
	velsFlag   string
	showPlot   bool
	plotHeight int
	svgOut     string
	svgPoses   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "armsim",
		Short: "planar robot arm dynamics simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "arm.yaml", "arm config file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the arm and store the trajectory",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "time", 0, "override duration")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot trajectories after the run")
	runCmd.Flags().IntVar(&plotHeight, "height", 8, "plot height")

	fkCmd := &cobra.Command{
		Use:   "fk",
		Short: "print joint and tip positions for given joint angles",
		RunE:  runFK,
	}
	fkCmd.Flags().StringVar(&anglesFlag, "q", "", "joint angles, comma separated (radians)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&anglesFlag, "q", "", "initial joint angles, comma separated")
	liveCmd.Flags().StringVar(&velsFlag, "dq", "", "initial joint velocities, comma separated")

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
	plotCmd.Flags().IntVar(&plotHeight, "height", 8, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run as an svg motion trace",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "motion.svg", "output file")
	svgCmd.Flags().IntVar(&svgPoses, "poses", 12, "number of overlaid poses")

	rootCmd.AddCommand(runCmd, fkCmd, liveCmd, listCmd, plotCmd, exportCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSetup() (*config.Config, *arm.Chain, arm.Vec2, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, arm.Vec2{}, fmt.Errorf("load config: %w", err)
	}
	chain, err := cfg.BuildChain()
	if err != nil {
		return nil, nil, arm.Vec2{}, err
	}
	gravity, err := cfg.GravityVec()
	if err != nil {
		return nil, nil, arm.Vec2{}, err
	}
	return cfg, chain, gravity, nil
}

func buildLaw(cfg *config.Config, chain *arm.Chain) (sim.ControlLaw, error) {
	switch cfg.Controller {
	case "", "none":
		return control.None(), nil
	case "pid":
		targets := cfg.ControllerParams.Targets
		if targets == nil {
			targets = make([]float64, chain.DOF())
		}
		p := cfg.ControllerParams
		return control.NewPID(p.Kp, p.Ki, p.Kd, targets).Law(), nil
	default:
		return nil, fmt.Errorf("unknown controller %q", cfg.Controller)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, chain, gravity, err := loadSetup()
	if err != nil {
		return err
	}
	law, err := buildLaw(cfg, chain)
	if err != nil {
		return err
	}

	simCfg := sim.Config{
		Start:   0,
		End:     cfg.Duration,
		Dt:      cfg.Dt,
		Gravity: gravity,
	}
	if duration > 0 {
		simCfg.End = duration
	}
	if dt > 0 {
		simCfg.Dt = dt
	}

	s := sim.New(chain, law)
	drift := metrics.NewEnergyDrift(gravity)
	effort := metrics.NewControlEffort()
	s.AddObserver(drift)
	s.AddObserver(effort)

	res, runErr := s.Run(simCfg)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	id, err := store.Save(cfg.Controller, simCfg, map[string]float64{
		drift.Name():  drift.Value(),
		effort.Name(): effort.Value(),
	}, res)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", id)
	fmt.Fprintf(w, "samples\t%d\n", res.Samples())
	fmt.Fprintf(w, "dof\t%d\n", chain.DOF())
	fmt.Fprintf(w, "energy drift\t%.3g\n", drift.Value())
	fmt.Fprintf(w, "control effort\t%.3g\n", effort.Value())
	w.Flush()

	if showPlot {
		fmt.Println()
		fmt.Print(viz.PlotAngles(res, plotHeight))
	}
	return runErr
}

func runFK(cmd *cobra.Command, args []string) error {
	_, chain, _, err := loadSetup()
	if err != nil {
		return err
	}
	if anglesFlag != "" {
		q, err := parseVector(anglesFlag)
		if err != nil {
			return err
		}
		if err := chain.SetQ(q); err != nil {
			return err
		}
	}

	kinematics.Forward(chain)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "link\tq\tjoint (x, y)\ttip (xe, ye)")
	for i, l := range chain.Links() {
		fmt.Fprintf(w, "%d\t%.4f\t(%.4f, %.4f)\t(%.4f, %.4f)\n",
			i, l.Q, l.X, l.Y, l.XE, l.YE)
	}
	w.Flush()

	t := chain.Terminal()
	fmt.Printf("\ntip: (%.6f, %.6f)\n", t.XE, t.YE)
	fmt.Println(viz.RenderSkeleton(chain, 48, 14))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, chain, gravity, err := loadSetup()
	if err != nil {
		return err
	}
	if anglesFlag != "" {
		q, err := parseVector(anglesFlag)
		if err != nil {
			return err
		}
		if err := chain.SetQ(q); err != nil {
			return err
		}
	}
	if velsFlag != "" {
		dq, err := parseVector(velsFlag)
		if err != nil {
			return err
		}
		if err := chain.SetDQ(dq); err != nil {
			return err
		}
	}
	law, err := buildLaw(cfg, chain)
	if err != nil {
		return err
	}

	model := viz.NewLive(chain, law, gravity, cfg.Dt)
	_, err = tea.NewProgram(model).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\ttime\tdof\tcontroller\tspan\tdt")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t[%g, %g]\t%g\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.DOF, r.Controller, r.Start, r.End, r.Dt)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	res, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.PlotAngles(res, plotHeight))
	fmt.Print(viz.PlotVelocities(res, plotHeight))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
}

func svgRun(cmd *cobra.Command, args []string) error {
	_, chain, _, err := loadSetup()
	if err != nil {
		return err
	}
	res, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if res.Samples() == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	if svgPoses < 2 {
		svgPoses = 2
	}
	stride := (res.Samples() - 1) / (svgPoses - 1)
	if stride < 1 {
		stride = 1
	}
	var poses [][]float64
	for i := 0; i < res.Samples(); i += stride {
		poses = append(poses, res.Q[i])
	}

	svg, err := viz.SkeletonSVG(chain, poses, 480)
	if err != nil {
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d poses)\n", svgOut, len(poses))
	return nil
}

func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
