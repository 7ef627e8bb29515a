package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/fsutil"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/monitoring"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/replay"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/debug"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/motion"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/session"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/units"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/version"
)

var (
	configPath  = flag.String("config", "", "Tuning config JSON (defaults to "+config.DefaultConfigPath+" when present)")
	sessionPath = flag.String("session", "", "Session file JSON; a demo session is generated when empty")
	demoMinutes = flag.Float64("demo-minutes", 10, "Length of the generated demo session in minutes")
	demoLanes   = flag.Int("demo-lanes", replay.DefaultLaneCount, "Number of swimmers in the demo session")
	speed       = flag.Float64("speed", 1, "Playback speed multiplier")
	realtime    = flag.Bool("realtime", false, "Pace frames against the wall clock instead of running headless")
	seed        = flag.Int64("seed", 1, "Seed for the demo session generator")
	outDir      = flag.String("out", "", "Directory to write per-swimmer summary JSON into")
	speedUnits  = flag.String("units", units.Per100M, "Units for mean speed: "+units.GetValidUnitsString())
	debugFrames = flag.Bool("debug", false, "Log every phase transition")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

type options struct {
	configPath  string
	sessionPath string
	demoMinutes float64
	demoLanes   int
	speed       float64
	realtime    bool
	seed        int64
	outDir      string
	units       string
	debug       bool
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{
		configPath:  *configPath,
		sessionPath: *sessionPath,
		demoMinutes: *demoMinutes,
		demoLanes:   *demoLanes,
		speed:       *speed,
		realtime:    *realtime,
		seed:        *seed,
		outDir:      *outDir,
		units:       *speedUnits,
		debug:       *debugFrames,
	}
	if err := run(ctx, opts, fsutil.OSFileSystem{}, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("swimsim: %v", err)
	}
}

func loadTuning(path string) (*config.SwimTuning, error) {
	if path != "" {
		return config.LoadTuningConfig(path)
	}
	if _, err := os.Stat(config.DefaultConfigPath); err == nil {
		return config.LoadTuningConfig(config.DefaultConfigPath)
	}
	return config.DefaultTuningConfig(), nil
}

func run(ctx context.Context, opts options, fsys fsutil.FileSystem, w io.Writer) error {
	if !units.IsValid(opts.units) {
		return fmt.Errorf("invalid units %q, want one of: %s", opts.units, units.GetValidUnitsString())
	}
	cfg, err := loadTuning(opts.configPath)
	if err != nil {
		return err
	}

	var entries []session.Entry
	if opts.sessionPath != "" {
		f, err := replay.LoadSessionFile(fsys, opts.sessionPath)
		if err != nil {
			return err
		}
		cfg = f.Tuning(cfg)
		entries = f.Entries
	} else {
		entries = replay.DemoEntries(opts.seed, opts.demoMinutes, cfg.GetPoolLengthM(), opts.demoLanes)
	}

	var sessionOpts []session.Option
	sessionOpts = append(sessionOpts, session.WithAnimator(motion.DefaultClipSet()))
	if opts.debug {
		collector := debug.NewDebugCollector()
		collector.SetEnabled(true)
		sessionOpts = append(sessionOpts, session.WithDebugCollector(collector))
	}
	s, err := session.New(cfg, entries, sessionOpts...)
	if err != nil {
		return err
	}

	onFrame := func(f session.Frame) {
		if f.Debug == nil {
			return
		}
		for _, tr := range f.Debug.Transitions {
			monitoring.Logf("frame %d: swimmer %s lap %d %s -> %s", f.ID, tr.SwimmerID, tr.LapIndex, tr.From, tr.To)
		}
	}

	var stats replay.Stats
	if opts.realtime {
		r := &replay.Runner{
			Session:   s,
			FrameRate: cfg.GetFrameRate(),
			Speed:     opts.speed,
			OnFrame:   onFrame,
		}
		stats, err = r.Run(ctx)
		if err != nil {
			return err
		}
	} else {
		stats = replay.RunHeadless(s, 1/cfg.GetFrameRate(), opts.speed, 0, onFrame)
	}

	summaries := s.Summaries()
	printSummaries(w, summaries, opts.units)
	fmt.Fprintf(w, "\nframes=%d simulated=%.1fs splashes=%d peak_particles=%d warnings=%d\n",
		stats.Frames, stats.SimSeconds, stats.Spawned, stats.PeakParticles, stats.Warnings)

	if opts.outDir != "" {
		paths, err := replay.WriteSummaries(fsys, opts.outDir, summaries)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(w, "wrote %s\n", p)
		}
	}
	return nil
}

func printSummaries(w io.Writer, summaries []session.Summary, speedUnits string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	for _, sum := range summaries {
		fmt.Fprintf(tw, "\n%s\t%d lengths\t%.0f m\trest %.0fs\n", sum.Name, sum.Lengths, sum.DistanceM, sum.RestSeconds)
		fmt.Fprintln(tw, "lap\tstroke\ttime\tstrokes\tpace/100m\tspm")
		for _, l := range sum.Laps {
			if l.IsRest {
				fmt.Fprintf(tw, "%d\trest\t%.1fs\t\t\t\n", l.Index, l.DurationSeconds)
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t%.1fs\t%d\t%s\t%.1f\n",
				l.Index, l.Stroke, l.DurationSeconds, l.Strokes, units.FormatPace(l.Pace), l.StrokeRate)
		}
		fmt.Fprintf(tw, "mean\t\t\t\t%s\t%.1f\n", units.FormatPace(sum.MeanPace), sum.MeanStrokeRate)
		if sum.SwimSeconds > 0 {
			mps := sum.DistanceM / sum.SwimSeconds
			fmt.Fprintf(tw, "speed\t%s\n", formatSpeed(mps, speedUnits))
		}
	}
}

func formatSpeed(mps float64, speedUnits string) string {
	switch speedUnits {
	case units.Per100M, units.Per100Yards:
		pace := time.Duration(units.ConvertSpeed(mps, speedUnits) * float64(time.Second))
		return fmt.Sprintf("%s %s", units.FormatPace(pace), speedUnits)
	}
	return fmt.Sprintf("%.2f %s", units.ConvertSpeed(mps, speedUnits), speedUnits)
}
