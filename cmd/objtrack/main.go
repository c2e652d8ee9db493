package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/objtrack/objtrack/internal/camera"
	"github.com/objtrack/objtrack/internal/config"
	"github.com/objtrack/objtrack/internal/monitoring"
	"github.com/objtrack/objtrack/internal/storage"
	"github.com/objtrack/objtrack/internal/tracker"
	"github.com/objtrack/objtrack/internal/tracking"
)

var (
	dataDir    string
	configFile string
	frames     int
	seed       int64
	width      int
	height     int
	focal      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "objtrack",
		Short: "Bayesian rigid-body pose tracking",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".objtrack", "data directory")

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "build a tracker from config and run it over synthetic frames",
		RunE:  runTrack,
	}
	trackCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	trackCmd.Flags().IntVar(&frames, "frames", 60, "number of frames to track")
	trackCmd.Flags().Int64Var(&seed, "seed", 1, "filter random seed")
	trackCmd.Flags().IntVar(&width, "width", 320, "camera width (pixels)")
	trackCmd.Flags().IntVar(&height, "height", 240, "camera height (pixels)")
	trackCmd.Flags().Float64Var(&focal, "focal", 525.0, "camera focal length (pixels)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved tracking runs",
		RunE:  listRuns,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage tracker configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.Default())
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(trackCmd, listCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	params := config.Default()
	if configFile != "" {
		var err error
		params, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}

	cam, err := camera.New(focal, focal, float64(width)/2, float64(height)/2, width, height)
	if err != nil {
		return err
	}

	trk, err := tracker.NewBuilder(params, cam).Build()
	if err != nil {
		return err
	}
	defer trk.Close()

	bodies := trk.ObjectModel().BodyCount()
	monitoring.Logf("tracking %d bodies, %d evaluation samples",
		bodies, trk.Filter().EvaluationCount())

	// Ground truth: bodies drift along x in front of the camera.
	truth := make([]tracking.Pose, bodies)
	for i := range truth {
		truth[i] = tracking.Pose{Position: [3]float64{0, float64(i) * 0.3, 1.0}}
	}
	if err := trk.Init(truth, seed); err != nil {
		return err
	}

	dt := params.ObjectTransition.DeltaTime
	times := make([]float64, 0, frames)
	estimates := make([]tracking.State, 0, frames)
	trace := make([]float64, 0, frames)

	for i := 0; i < frames; i++ {
		t := float64(i) * dt
		for b := range truth {
			truth[b].Position[0] = 0.05 * t
		}
		frame := renderFrame(trk, cam, truth, t)

		estimate, err := trk.Track(frame)
		if err != nil {
			return err
		}
		times = append(times, t)
		estimates = append(estimates, estimate)
		trace = append(trace, estimate.BodyPose(0).Position[0])
	}

	fmt.Println(asciigraph.Plot(trace,
		asciigraph.Height(10),
		asciigraph.Caption("estimated x position of body 0")))

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	profile := params.SelectedProfile()
	runID, err := store.Save(storage.RunMetadata{
		Object:          params.Object.Meshes[0],
		UseGPU:          params.UseGPU,
		Bodies:          bodies,
		EvaluationCount: profile.EvaluationCount,
		MaxSampleCount:  profile.MaxSampleCount,
		UpdateRate:      profile.UpdateRate,
		MaxKLDivergence: profile.MaxKLDivergence,
	}, times, estimates)
	if err != nil {
		return err
	}
	monitoring.Logf("saved run %s", runID)
	return nil
}

// renderFrame synthesizes a depth frame from the ground-truth poses by
// splatting body vertices through the camera; nearest depth wins.
func renderFrame(trk *tracker.Tracker, cam *camera.Data, truth []tracking.Pose, t float64) *camera.DepthFrame {
	frame := camera.NewDepthFrame(cam.Width(), cam.Height())
	frame.Time = t

	model := trk.ObjectModel()
	for b := 0; b < model.BodyCount(); b++ {
		pos := truth[b].Position
		for _, vtx := range model.Body(b).Vertices {
			p := [3]float64{vtx[0] + pos[0], vtx[1] + pos[1], vtx[2] + pos[2]}
			u, v, depth, ok := cam.Project(p)
			if !ok {
				continue
			}
			if existing := frame.At(u, v); existing <= 0 || depth < existing {
				frame.Set(u, v, depth)
			}
		}
	}
	return frame
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOBJECT\tBODIES\tFRAMES\tGPU\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\n",
			run.ID, run.Object, run.Bodies, run.Frames, run.UseGPU,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
