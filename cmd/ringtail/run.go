package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	ringbuffer "github.com/jonoton/go-fifo"
	"github.com/jonoton/go-fifo/ringmetrics"
)

const maxLineSize = 1024 * 1024

type tailOutput struct {
	Capacity int      `json:"capacity"`
	Length   int      `json:"length"`
	Lines    []string `json:"lines"`
}

func runTail(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string, opts *cliOptions) error {
	registry := prometheus.NewRegistry()
	cfg := ringbuffer.Config{
		Capacity: opts.capacity,
		Logger:   opts.logger.Named("ring"),
	}
	if opts.metrics {
		cfg.Observer = ringmetrics.New(registry, "ringtail")
	}
	rb, err := ringbuffer.NewWithConfig[string](cfg)
	if err != nil {
		return usageError("invalid capacity: %v", err)
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		if err := readInto(ctx, rb, name, stdin); err != nil {
			if errors.Is(err, context.Canceled) {
				return exitSilent(exitCodeInterrupted)
			}
			return err
		}
		opts.logger.Debug("input read",
			zap.String("input", name),
			zap.Int("length", rb.Len()),
			zap.Int("capacity", rb.Cap()),
		)
	}

	if opts.resize > 0 {
		if err := rb.Resize(opts.resize); err != nil {
			return usageError("invalid resize: %v", err)
		}
	}
	for i := 0; i < opts.skip; i++ {
		if rb.Pop().IsNone() {
			break
		}
	}

	if err := writeLines(stdout, rb, opts.jsonOutput); err != nil {
		return errors.Wrap(err, "write output")
	}
	if opts.metrics {
		if err := writeMetrics(stderr, registry); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	return nil
}

func readInto(ctx context.Context, rb *ringbuffer.RingBuffer[string], name string, stdin io.Reader) error {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rb.Put(scanner.Text())
	}
	return errors.Wrapf(scanner.Err(), "read %s", name)
}

func writeLines(w io.Writer, rb *ringbuffer.RingBuffer[string], jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tailOutput{
			Capacity: rb.Cap(),
			Length:   rb.Len(),
			Lines:    rb.Items(),
		})
	}
	bw := bufio.NewWriter(w)
	for line := range rb.All() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
