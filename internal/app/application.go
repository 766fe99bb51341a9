package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"goasterix/internal/asterix"
	"goasterix/internal/asterix/cat021"
	"goasterix/internal/asterix/cat048"
	"goasterix/internal/asterix/cat062"
	"goasterix/internal/asterix/categories"
	"goasterix/internal/block"
	"goasterix/internal/recorder"
	"goasterix/internal/sim"
	"goasterix/internal/validator"
)

// Application runs decode and round-trip jobs
type Application struct {
	config  Config
	logger  *logrus.Logger
	verbose bool
	now     func() time.Time
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config:  config,
		logger:  logger,
		verbose: config.Verbose,
		now:     time.Now,
	}
}

// Logger returns the application logger
func (app *Application) Logger() *logrus.Logger {
	return app.logger
}

// DecodeSummary counts the outcome of a decode run.
type DecodeSummary struct {
	Blocks  int
	Records int
	Skipped int
	Failed  int
}

// Decode reads data blocks from r and writes one JSON object per decoded record
// to w. Blocks that fail to decode are logged and skipped.
func (app *Application) Decode(ctx context.Context, r io.Reader, w io.Writer) (DecodeSummary, error) {
	var summary DecodeSummary

	var schema *asterix.Schema
	if app.config.Category != 0 {
		var ok bool
		if schema, ok = categories.Lookup(app.config.Category); !ok {
			return summary, fmt.Errorf("unsupported category %d", app.config.Category)
		}
	}
	decoder := block.NewDecoder(schema, app.verbose, app.logger)

	if app.config.HexInput {
		raw, err := readHex(r)
		if err != nil {
			return summary, err
		}
		r = bytes.NewReader(raw)
	}

	out := bufio.NewWriter(w)
	enc := json.NewEncoder(out)

	stream := block.NewStream(app.logger)
	chunk := make([]byte, DefaultChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		n, readErr := r.Read(chunk)
		for _, b := range stream.Feed(chunk[:n]) {
			res, err := decoder.DecodeStream(b)
			if err != nil {
				return summary, err
			}
			summary.Blocks += res.Blocks
			summary.Skipped += res.Skipped
			summary.Failed += len(res.Errors)
			for _, rec := range res.Records {
				if err := enc.Encode(rec); err != nil {
					return summary, fmt.Errorf("failed to write record: %w", err)
				}
				summary.Records++
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return summary, fmt.Errorf("failed to read input: %w", readErr)
		}
	}

	if err := out.Flush(); err != nil {
		return summary, fmt.Errorf("failed to write record: %w", err)
	}

	if pending := stream.Pending(); pending > 0 {
		app.logger.WithField("bytes", pending).Warn("Input ends inside a data block")
	}

	app.logger.WithFields(logrus.Fields{
		"blocks":  summary.Blocks,
		"records": summary.Records,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	}).Info("Decode finished")

	return summary, nil
}

// Archive decodes r into the daily record files of the configured output
// directory and removes files older than the configured retention.
func (app *Application) Archive(ctx context.Context, r io.Reader) (DecodeSummary, error) {
	rec, err := recorder.New(app.config.OutputDir, RecordPrefix, app.config.UseUTC, app.logger)
	if err != nil {
		return DecodeSummary{}, err
	}

	summary, err := app.Decode(ctx, r, rec)
	if closeErr := rec.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return summary, err
	}

	if app.config.KeepDays > 0 {
		if _, err := rec.Cleanup(app.config.KeepDays); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func readHex(r io.Reader) ([]byte, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	clean := strings.Join(strings.Fields(string(text)), "")
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return raw, nil
}

// RoundTrip generates a scenario, encodes it, decodes it back, validates the
// result and writes the report to w.
func (app *Application) RoundTrip(w io.Writer) (*validator.Stats, error) {
	cfg, err := app.config.RunConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Verbose && !app.verbose {
		app.verbose = true
		app.logger.SetLevel(logrus.DebugLevel)
	}

	radar := sim.NewRadar(cfg.Radar.Config)
	duration := time.Duration(cfg.Radar.DurationS * float64(time.Second))
	t0 := app.now().UTC()

	var plots []sim.Plot
	if cfg.Category == 48 {
		plots = radar.GeneratePlots(cfg.Radar.Targets, t0)
	} else {
		plots = radar.AircraftScenario(cfg.Radar.Targets, duration, t0)
	}

	app.logger.WithFields(logrus.Fields{
		"category": cfg.Category,
		"plots":    len(plots),
		"seed":     cfg.Radar.Seed,
	}).Info("Generated scenario")

	var ok bool
	var stats *validator.Stats
	switch cfg.Category {
	case 48:
		originals := radar.Plots048(plots)
		records, err := roundTrip(app.logger, cfg.Verbose, cat048.Schema(), originals, cat048.EncodePlot)
		if err != nil {
			return nil, err
		}
		ok, stats = validator.ValidateCAT048(originals, records, cfg.Tolerances)
	case 62:
		originals := radar.Tracks(plots)
		records, err := roundTrip(app.logger, cfg.Verbose, cat062.Schema(), originals, cat062.EncodeTrack)
		if err != nil {
			return nil, err
		}
		ok, stats = validator.ValidateCAT062(originals, records, cfg.Tolerances)
	case 21:
		originals := radar.Reports(plots)
		records, err := roundTrip(app.logger, cfg.Verbose, cat021.Schema(), originals, cat021.EncodeReport)
		if err != nil {
			return nil, err
		}
		ok, stats = validator.ValidateCAT021(originals, records, cfg.Tolerances)
	default:
		return nil, fmt.Errorf("unsupported category %d", cfg.Category)
	}

	fields := logrus.Fields{
		"run_id":       stats.RunID.String(),
		"records":      stats.Total,
		"success_rate": fmt.Sprintf("%.2f%%", stats.SuccessRate()*100),
	}
	if ok {
		app.logger.WithFields(fields).Info("Round trip passed")
	} else {
		app.logger.WithFields(fields).Error("Round trip failed")
	}

	if err := stats.WriteReport(w, cfg.Verbose); err != nil {
		return stats, fmt.Errorf("failed to write report: %w", err)
	}
	return stats, nil
}

// roundTrip encodes originals, packs them into data blocks and decodes the
// blocks back into records.
func roundTrip[T any](logger *logrus.Logger, verbose bool, schema *asterix.Schema, originals []T, encode func(T) ([]byte, error)) ([]asterix.Record, error) {
	records := make([][]byte, 0, len(originals))
	for i, o := range originals {
		rec, err := encode(o)
		if err != nil {
			return nil, fmt.Errorf("encode CAT%03d record %d: %w", schema.Category(), i+1, err)
		}
		records = append(records, rec)
	}

	buf, err := block.Pack(schema.Category(), records)
	if err != nil {
		return nil, err
	}
	return block.NewDecoder(schema, verbose, logger).DecodeMultipleBlocks(buf)
}

// Describe writes the data items of a category's UAP to w.
func Describe(w io.Writer, category uint8) error {
	schema, ok := categories.Lookup(category)
	if !ok {
		return fmt.Errorf("unsupported category %d", category)
	}

	fmt.Fprintf(w, "CAT%03d %s, edition %s\n\n", schema.Category(), schema.Name(), schema.Edition())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FRN\tITEM\tNAME")
	for _, item := range schema.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", item.FRN, item.ID, item.Name)
	}
	return tw.Flush()
}

// Categories writes the supported categories to w.
func Categories(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tEDITION")
	for _, s := range categories.All() {
		fmt.Fprintf(tw, "%03d\t%s\t%s\n", s.Category(), s.Name(), s.Edition())
	}
	return tw.Flush()
}
