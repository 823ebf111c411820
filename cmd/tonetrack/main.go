package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tonetrack/tonetrack"
	"github.com/tonetrack/tonetrack/metrics"
	"github.com/tonetrack/tonetrack/oto"
	"github.com/tonetrack/tonetrack/version"
)

func main() {
	os.Exit(cliMain(os.Args[1:], os.Stdout, os.Stderr))
}

// cliMain runs the command line utility and returns the exit code. Deferred
// calls run before main exits.
func cliMain(argv []string, stdout, stderr io.Writer) int {
	cfg, args, err := parseConfig(argv, stderr)
	if err != nil {
		return 2
	}
	if cfg.Version {
		fmt.Fprintln(stdout, version.VersionOrHash)
		return 0
	}
	if cfg.Help {
		return 0
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "could not create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	return run(cfg, args, logger)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// renderer renders score files according to the config, sharing one audio
// context and one set of metrics between all of them.
type renderer struct {
	cfg     config
	logger  *zap.Logger
	metrics *metrics.Metrics
	audio   *oto.OtoContext
}

func run(cfg config, args []string, logger *zap.Logger) int {
	r := &renderer{cfg: cfg, logger: logger, metrics: metrics.New()}
	logger.Debug("tonetrack starting", zap.String("version", version.VersionOrHash), zap.Strings("args", args))
	retval := 0
	if cfg.Demo {
		if err := r.render(tonetrack.DemoScore()); err != nil {
			logger.Error("could not render demo score", zap.Error(err))
			retval = 1
		}
	}
	for _, param := range args {
		files := []string{param}
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			files, err = scoreFiles(param)
			if err != nil {
				logger.Error("could not list score files", zap.String("dir", param), zap.Error(err))
				retval = 1
				continue
			}
		}
		for _, file := range files {
			if err := r.process(file); err != nil {
				logger.Error("could not process file", zap.String("file", file), zap.Error(err))
				retval = 1
			}
		}
	}
	if r.audio != nil {
		if err := r.audio.Close(); err != nil {
			logger.Warn("could not close audio context", zap.Error(err))
		}
	}
	if cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("could not write metrics", zap.Error(err))
			retval = 1
		}
	}
	return retval
}

func scoreFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yml", "*.yaml", "*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("could not glob the path %v for %v files: %w", dir, pattern, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func (r *renderer) process(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("could not read file %v: %w", filename, err)
	}
	score, err := tonetrack.LoadScore(data)
	if err != nil {
		return err
	}
	if score.Name == "" {
		_, name := filepath.Split(filename)
		score.Name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return r.render(score)
}

func (r *renderer) render(score tonetrack.Score) error {
	if r.cfg.SampleRate > 0 {
		score.SampleRate = r.cfg.SampleRate
	}
	dir, err := r.outputDir()
	if err != nil {
		return err
	}
	track, err := score.Render(tonetrack.WithRecorder(r.metrics), tonetrack.WithDir(dir))
	if err != nil {
		r.metrics.Rendered(0, err)
		return fmt.Errorf("could not render score %v: %w", score.Name, err)
	}
	r.metrics.Rendered(track.Seconds(), nil)
	levels := track.Levels()
	r.logger.Info("rendered score",
		zap.String("score", score.Name),
		zap.String("track", track.ID()),
		zap.Int("notes", len(score.Notes)),
		zap.Int("sampleRate", track.SampleRate()),
		zap.Int("blocks", track.NumBlocks()),
		zap.Float64("seconds", track.Seconds()),
		zap.Float64("peakDB", levels.PeakDB),
		zap.Float64("rmsDB", levels.RMSDB),
	)
	if err := r.output(score, track); err != nil {
		return err
	}
	if r.cfg.Play {
		return r.play(track)
	}
	return nil
}

func (r *renderer) outputDir() (string, error) {
	dir := r.cfg.OutputDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get working directory, specify the output directory explicitly: %w", err)
		}
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("could not create output directory %v: %w", dir, err)
	}
	return dir, nil
}

func (r *renderer) output(score tonetrack.Score, track *tonetrack.Track) error {
	if r.cfg.Stdout {
		return track.WriteWav(os.Stdout)
	}
	name, err := score.OutputName()
	if err != nil {
		return err
	}
	if r.cfg.Wav {
		path, err := track.SerializeToDir(name)
		if err != nil {
			return fmt.Errorf("error outputting .wav file: %w", err)
		}
		r.logger.Info("wrote file", zap.String("path", path), zap.Int("bytes", tonetrack.WavHeaderSize+track.ByteLength()))
	}
	if r.cfg.Raw {
		raw, err := track.Raw()
		if err != nil {
			return fmt.Errorf("could not generate .raw file: %w", err)
		}
		dir, err := track.Dir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+".raw")
		if err := os.WriteFile(path, raw, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %w", path, err)
		}
		r.metrics.BytesWritten(len(raw))
		r.logger.Info("wrote file", zap.String("path", path), zap.Int("bytes", len(raw)))
	}
	if r.cfg.Blocks {
		paths, err := track.DumpBlocks()
		if err != nil {
			return fmt.Errorf("could not dump blocks: %w", err)
		}
		r.logger.Debug("dumped blocks", zap.Int("count", len(paths)))
	}
	return nil
}

func (r *renderer) play(track *tonetrack.Track) error {
	if r.audio == nil {
		audio, err := oto.NewContext(track.SampleRate())
		if err != nil {
			return fmt.Errorf("could not acquire oto AudioContext: %w", err)
		}
		r.audio = audio
	}
	if r.audio.SampleRate() != track.SampleRate() {
		r.logger.Warn("skipping playback, sample rate differs from the audio device",
			zap.Int("track", track.SampleRate()), zap.Int("device", r.audio.SampleRate()))
		return nil
	}
	sink := r.audio.Output()
	if err := track.Play(sink); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}
