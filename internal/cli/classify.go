package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shotleylegal/taxaengine/internal/clause"
	"github.com/shotleylegal/taxaengine/internal/metrics"
	"github.com/shotleylegal/taxaengine/internal/pipeline"
	"github.com/shotleylegal/taxaengine/internal/popimar"
	"github.com/shotleylegal/taxaengine/internal/record"
	"github.com/shotleylegal/taxaengine/internal/rolematch"
	"github.com/shotleylegal/taxaengine/internal/taxaconfig"
)

var classifyInputPath string

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify NDJSON records on stdin (or --input) and write enriched NDJSON to stdout",
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyInputPath, "input", "", "Path to an NDJSON file (default: stdin)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := taxaconfig.Load(configPath, cmd.Flags())
	if err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if len(cfg.PopimarEligibleDutyTypes) > 0 {
		eligible := make(map[string]bool, len(cfg.PopimarEligibleDutyTypes))
		for _, dt := range cfg.PopimarEligibleDutyTypes {
			eligible[dt] = true
		}
		popimar.EligibleDutyTypes = eligible
	}

	recs, err := readRecords(classifyInputPath)
	if err != nil {
		return oops.Code("INPUT_READ_FAILED").Wrap(err)
	}

	var metricsWriter *metrics.Writer
	if metricsPath != "" {
		metricsWriter, err = metrics.New(metricsPath)
		if err != nil {
			return oops.Code("METRICS_OPEN_FAILED").Wrap(err)
		}
		defer metricsWriter.Close()
	}

	roleMetrics := &rolematch.Metrics{}
	pl := pipeline.New(pipeline.Options{
		WindowThreshold: cfg.WindowThreshold,
		ClauseOptions: clause.Options{
			SubjectWindow: cfg.SubjectWindow,
			ActionWindow:  cfg.ActionWindow,
			MaxClauseLen:  cfg.MaxClauseLen,
		},
		Concurrency: runtime.NumCPU(),
		Metrics:     roleMetrics,
	})

	results, err := pl.ClassifyBatch(context.Background(), recs)
	if err != nil {
		return oops.Code("CLASSIFY_BATCH_FAILED").Wrap(err)
	}

	if metricsWriter != nil {
		_ = metricsWriter.Write(metrics.Record{
			Stage:       "classify_batch",
			RecordsIn:   len(recs),
			MatchesOut:  roleMetrics.MatchesFound,
			AnchorsSeen: roleMetrics.AnchorsSeen,
			Windowed:    roleMetrics.Windowed,
		})
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, res := range results {
		data, err := record.ToJSON(res.Record)
		if err != nil {
			return oops.Code("OUTPUT_ENCODE_FAILED").Wrap(err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return oops.Code("OUTPUT_WRITE_FAILED").Wrap(err)
		}
	}
	return nil
}

func readRecords(path string) ([]record.Record, error) {
	var in *os.File
	if path == "" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var recs []record.Record
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := record.FromJSON(line)
		if err != nil {
			return nil, fmt.Errorf("parsing record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
