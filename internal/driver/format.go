package driver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"canonfmt/internal/fmtcache"
	"canonfmt/internal/fmtpipeline"
	"canonfmt/internal/source"
)

// FormatPaths formats the collected inputs in parallel. Per-file failures
// land in the result slice instead of aborting the run; the returned error
// reports cancellation or an empty input set.
func FormatPaths(ctx context.Context, inputs []Input, opts Options) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errors.New("fmt: no input files found")
	}

	cache := opts.Cache
	if opts.NoCache {
		cache = nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FormatResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))

	for i, in := range inputs {
		g.Go(func(i int, in Input) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				results[i] = formatOne(in, opts, cache)
				return nil
			}
		}(i, in))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// formatOne runs the whole pipeline for a single file: load, cache lookup,
// dialect formatting, change detection and write-back.
func formatOne(in Input, opts Options, cache *fmtcache.DiskCache) FormatResult {
	res := FormatResult{Path: in.Path, Dialect: in.Dialect}
	start := time.Now()

	emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageScan, Status: fmtpipeline.StatusWorking})

	file, err := source.Load(in.Path)
	if err != nil {
		res.Err = err
		opts.Timings.Add(fmtpipeline.StageScan, time.Since(start))
		emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageScan, Status: fmtpipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}

	// Хеш берётся по нормализованному содержимому: если загрузка что-то
	// переписала, файл на диске каноническим быть не может
	if cache != nil && !file.Flags.Normalized() {
		var payload fmtcache.Payload
		if ok, getErr := cache.Get(fmtcache.Digest(file.Hash), &payload); getErr == nil && ok &&
			payload.Fresh(string(in.Dialect), len(file.Content)) && payload.Formatted {
			res.Skipped = true
			if opts.Stdout {
				res.Formatted = file.Content
			}
			opts.Timings.Add(fmtpipeline.StageScan, time.Since(start))
			emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageScan, Status: fmtpipeline.StatusDone, Elapsed: time.Since(start)})
			return res
		}
	}
	opts.Timings.Add(fmtpipeline.StageScan, time.Since(start))

	emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageParse, Status: fmtpipeline.StatusWorking})
	parseStart := time.Now()
	formatted, warnings, err := formatContent(in.Dialect, file.Content)
	opts.Timings.Add(fmtpipeline.StageParse, time.Since(parseStart))
	if err != nil {
		res.Err = err
		emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageParse, Status: fmtpipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}
	res.Warnings = warnings

	emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageRender, Status: fmtpipeline.StatusWorking})
	renderStart := time.Now()
	changed := !bytes.Equal(formatted, file.Content) || file.Flags.Normalized()
	res.Changed = changed
	if opts.Stdout {
		res.Formatted = formatted
	}
	opts.Timings.Add(fmtpipeline.StageRender, time.Since(renderStart))

	// уже каноничный файл запоминаем, чтобы следующий прогон его пропустил
	if cache != nil && !changed {
		if payload, perr := fmtcache.NewPayload(string(in.Dialect), len(file.Content), true); perr == nil {
			_ = cache.Put(fmtcache.Digest(file.Hash), payload)
		}
	}

	if opts.Check || opts.Stdout || !changed {
		emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageRender, Status: fmtpipeline.StatusDone, Elapsed: time.Since(start)})
		return res
	}

	emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageWrite, Status: fmtpipeline.StatusWorking})
	writeStart := time.Now()
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(in.Path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(in.Path, formatted, mode.Perm()); err != nil {
		res.Err = err
		opts.Timings.Add(fmtpipeline.StageWrite, time.Since(writeStart))
		emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageWrite, Status: fmtpipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}
	opts.Timings.Add(fmtpipeline.StageWrite, time.Since(writeStart))

	if cache != nil {
		if payload, perr := fmtcache.NewPayload(string(in.Dialect), len(formatted), true); perr == nil {
			_ = cache.Put(fmtcache.Digest(sha256.Sum256(formatted)), payload)
		}
	}

	emit(opts.Progress, fmtpipeline.Event{File: in.Path, Stage: fmtpipeline.StageWrite, Status: fmtpipeline.StatusDone, Elapsed: time.Since(start)})
	return res
}

func emit(sink fmtpipeline.ProgressSink, evt fmtpipeline.Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
