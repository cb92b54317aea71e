// Rate-limited value pacing service

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/mmcloughlin/profile"
	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/step-limit/base/logbase"

	"example.com/step-limit/benchmark"

	"example.com/step-limit/core/pacing"

	"example.com/step-limit/driver/clocks"

	"example.com/step-limit/service"
)

const (
	logLevelQuiet = iota
	logLevelDefault
	logLevelVerbose

	limiterModeStep     = "step"
	limiterModeAbsolute = "absolute"
)

type svcConfig struct {
	Mode             string  `toml:"mode,omitempty"`
	MaxFalling       int     `toml:"max_falling,omitempty"`
	MaxRising        int     `toml:"max_rising,omitempty"`
	Period           uint64  `toml:"period,omitempty"`
	InitialValue     int     `toml:"initial_value,omitempty"`
	Targets          []int   `toml:"targets,omitempty"`
	TickInterval     float64 `toml:"tick_interval,omitempty"` // seconds
	LocalMetricsAddr string  `toml:"local_metrics_address,omitempty"`
}

func initLogger(logLevel int) {
	var h slog.Handler
	if logLevel == logLevelQuiet {
		h = slog.NewTextHandler(io.Discard, nil)
	} else {
		var (
			addSource   bool
			level       slog.Leveler
			replaceAttr func(groups []string, a slog.Attr) slog.Attr
		)
		if logLevel == logLevelVerbose {
			_, f, _, ok := runtime.Caller(0)
			var basepath string
			if ok {
				basepath = filepath.Dir(f)
			}
			addSource = true
			level = slog.LevelDebug
			replaceAttr = func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					source := a.Value.Any().(*slog.Source)
					if basepath == "" {
						source.File = filepath.Base(source.File)
					} else {
						relpath, err := filepath.Rel(basepath, source.File)
						if err != nil {
							source.File = filepath.Base(source.File)
						} else {
							source.File = relpath
						}
					}
				}
				return a
			}
		}
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource:   addSource,
			Level:       level,
			ReplaceAttr: replaceAttr,
		})
	}
	slog.SetDefault(slog.New(h))
}

func showInfo() {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		fmt.Print(bi.String())
	}
}

func runMonitor(cfg svcConfig) {
	if cfg.LocalMetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			err := http.ListenAndServe(cfg.LocalMetricsAddr, nil)
			logbase.Fatal(slog.Default(), "failed to serve metrics", slog.Any("error", err))
		}()
	}
}

func loadConfig(configFile string) svcConfig {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		logbase.Fatal(slog.Default(), "failed to load configuration", slog.Any("error", err))
	}
	var cfg svcConfig
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		logbase.Fatal(slog.Default(), "failed to decode configuration", slog.Any("error", err))
	}
	return cfg
}

func newPacer(cfg svcConfig) pacing.Pacer {
	switch cfg.Mode {
	case "", limiterModeStep:
		l := &pacing.StepLimiter{}
		l.Begin()
		l.SetLimits(cfg.MaxFalling, cfg.MaxRising)
		l.SetPeriod(cfg.Period)
		l.SetValue(cfg.InitialValue)
		return l
	case limiterModeAbsolute:
		l := &pacing.AbsoluteStepLimiter{}
		l.Begin()
		l.SetLimits(cfg.MaxFalling, cfg.MaxRising)
		l.SetPeriod(cfg.Period)
		l.SetValue(cfg.InitialValue)
		return l
	}
	logbase.Fatal(slog.Default(), "invalid limiter mode specified in config",
		slog.String("mode", cfg.Mode))
	return nil
}

func runRamp(configFile string) {
	log := slog.Default()
	ctx := context.Background()

	cfg := loadConfig(configFile)
	if cfg.MaxFalling == 0 && cfg.MaxRising == 0 {
		logbase.Fatal(log, "no limits specified in config")
	}
	if len(cfg.Targets) == 0 {
		logbase.Fatal(log, "no targets specified in config")
	}
	if cfg.TickInterval < 0.0 {
		logbase.Fatal(log, "invalid tick interval specified in config")
	}
	tickInterval := time.Duration(cfg.TickInterval * float64(time.Second))

	runMonitor(cfg)

	r := &service.Ramp{
		Log:      log,
		Clock:    clocks.Monotonic{},
		Pacer:    newPacer(cfg),
		Interval: tickInterval,
		Targets:  cfg.Targets,
	}
	r.Run(ctx)
}

func runBenchmark(profileCPU bool) {
	log := slog.Default()
	if profileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	benchmark.RunPacingBenchmark(log)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		quiet      bool
		verbose    bool
		configFile string
		profileCPU bool
	)

	infoFlags := flag.NewFlagSet("info", flag.ExitOnError)
	rampFlags := flag.NewFlagSet("ramp", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	rampFlags.BoolVar(&quiet, "quiet", false, "Disable logging")
	rampFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	rampFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&quiet, "quiet", false, "Disable logging")
	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.BoolVar(&profileCPU, "profile", false, "Profile CPU usage")

	logLevel := func() int {
		if quiet && verbose {
			exitWithUsage()
		}
		if quiet {
			return logLevelQuiet
		}
		if verbose {
			return logLevelVerbose
		}
		return logLevelDefault
	}

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case infoFlags.Name():
		err := infoFlags.Parse(os.Args[2:])
		if err != nil || infoFlags.NArg() != 0 {
			exitWithUsage()
		}
		showInfo()
	case rampFlags.Name():
		err := rampFlags.Parse(os.Args[2:])
		if err != nil || rampFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(logLevel())
		runRamp(configFile)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(logLevel())
		runBenchmark(profileCPU)
	default:
		exitWithUsage()
	}
}
