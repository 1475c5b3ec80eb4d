// Tick service

package main

import (
	"bytes"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/game-time/base/metrics"
	"example.com/game-time/base/zaplog"
	"example.com/game-time/benchmark"

	"example.com/game-time/core/rate"
	"example.com/game-time/core/tick"
	"example.com/game-time/core/timebase"
	"example.com/game-time/core/timeval"

	"example.com/game-time/driver/clock"
)

const defaultMetricsAddr = "127.0.0.1:8080"

type svcConfig struct {
	MetricsAddr     string           `toml:"metrics_address,omitempty"`
	Rate            float64          `toml:"rate,omitempty"`
	PollInterval    timeval.TimeSpan `toml:"poll_interval,omitempty"`
	RunFor          timeval.TimeSpan `toml:"run_for,omitempty"`
	TickFrequencies []tick.Frequency `toml:"tick_frequencies,omitempty"`
}

var (
	log *zap.Logger

	svcMetrics = struct {
		stepsApplied prometheus.Counter
		ticksEmitted prometheus.Counter
		zeroSteps    prometheus.Counter
		clockSeconds prometheus.Gauge
		clockRate    prometheus.Gauge
	}{
		stepsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.TickServiceStepsAppliedN,
			Help: metrics.TickServiceStepsAppliedH,
		}),
		ticksEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.TickServiceTicksEmittedN,
			Help: metrics.TickServiceTicksEmittedH,
		}),
		zeroSteps: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.TickServiceZeroStepsN,
			Help: metrics.TickServiceZeroStepsH,
		}),
		clockSeconds: promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.TickServiceClockSecondsN,
			Help: metrics.TickServiceClockSecondsH,
		}),
		clockRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.TickServiceClockRateN,
			Help: metrics.TickServiceClockRateH,
		}),
	}
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func runMonitor(log *zap.Logger, addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) svcConfig {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	var cfg svcConfig
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		log.Fatal("failed to decode configuration", zap.Error(err))
	}
	return cfg
}

func runService(configFile string) {
	cfg := loadConfig(configFile)

	lclk := &clock.SystemClock{Log: log}
	timebase.RegisterClock(lclk)

	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = defaultMetricsAddr
	}
	go runMonitor(log, cfg.MetricsAddr)

	r := rate.New()
	if cfg.Rate != 0 {
		r.SetRate(cfg.Rate)
	}
	svcMetrics.clockRate.Set(r.Rate())

	tickers := make([]tick.FrequencyTicker, 0, len(cfg.TickFrequencies))
	for _, f := range cfg.TickFrequencies {
		tickers = append(tickers, f.Ticker(r.Now()))
		log.Info("ticker armed", zap.Stringer("frequency", f))
	}

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = timeval.Millisecond
	}

	clk := clock.NewClock(lclk)
	for {
		time.Sleep(poll.Duration())
		cs := clk.Step()
		scaled := r.Step(cs.Step)

		svcMetrics.stepsApplied.Inc()
		if scaled.Step == timeval.Zero {
			svcMetrics.zeroSteps.Inc()
		}
		svcMetrics.clockSeconds.Set(scaled.Now.SinceStart().SecondsF64())

		for i := range tickers {
			tickers[i].WithTicks(scaled.Step, func(tk timeval.ClockStep) {
				svcMetrics.ticksEmitted.Inc()
				log.Debug("tick",
					zap.Int("ticker", i),
					zap.Stringer("at", tk.Now),
				)
			})
		}

		if cfg.RunFor > 0 && clk.Now().SinceStart() >= cfg.RunFor {
			break
		}
	}
	log.Info("tick service done",
		zap.Stringer("wall", clk.Now().SinceStart()),
		zap.Stringer("clock", r.Now().SinceStart()),
	)
}

func runBenchmark(freqStr string, numTicks int) {
	f, err := tick.ParseFrequency(freqStr)
	if err != nil {
		log.Fatal("invalid frequency", zap.Error(err))
	}
	lclk := &clock.SystemClock{Log: log}
	benchmark.RunTickerBenchmark(log, lclk, f, numTicks)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		freqStr    string
		numTicks   int
	)

	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	runFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	runFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.StringVar(&freqStr, "freq", "1000 Hz", "Tick frequency")
	benchmarkFlags.IntVar(&numTicks, "ticks", 100_000, "Number of ticks to observe")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case runFlags.Name():
		err := runFlags.Parse(os.Args[2:])
		if err != nil || runFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runService(configFile)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(freqStr, numTicks)
	case "x":
		runX()
	default:
		exitWithUsage()
	}
}
