package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shotleylegal/taxaengine/internal/making"
	"github.com/shotleylegal/taxaengine/internal/taxaconfig"
)

var detectInputPath string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run the making/not_making detector over metadata-only NDJSON records",
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectInputPath, "input", "", "Path to an NDJSON metadata file (default: stdin)")
	rootCmd.AddCommand(detectCmd)
}

// detectInput is the minimal metadata shape the detect subcommand reads —
// a subset of record.Record's MakingDetector fields, decoded directly so
// this path never needs a full Record.
type detectInput struct {
	TitleEn         string `json:"title_en"`
	MdDescription   string `json:"md_description"`
	MdBodyParas     *int   `json:"md_body_paras"`
	MdScheduleParas *int   `json:"md_schedule_paras"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := taxaconfig.Load(configPath, cmd.Flags())
	if err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	cal := making.Calibration{
		BaseRate:      cfg.MakingBaseRate,
		LowThreshold:  cfg.MakingLowThreshold,
		HighThreshold: cfg.MakingHighThreshold,
	}

	var in *os.File
	if detectInputPath == "" {
		in = os.Stdin
	} else {
		f, err := os.Open(detectInputPath)
		if err != nil {
			return oops.Code("INPUT_OPEN_FAILED").Wrap(err)
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var meta detectInput
		if err := json.Unmarshal(line, &meta); err != nil {
			return fmt.Errorf("parsing metadata record: %w", err)
		}

		result := making.Detect(making.Metadata{
			TitleEn:         meta.TitleEn,
			MdDescription:   meta.MdDescription,
			MdBodyParas:     meta.MdBodyParas,
			MdScheduleParas: meta.MdScheduleParas,
		}, cal)

		data, err := json.Marshal(result)
		if err != nil {
			return oops.Code("OUTPUT_ENCODE_FAILED").Wrap(err)
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return oops.Code("OUTPUT_WRITE_FAILED").Wrap(err)
		}
	}
	return scanner.Err()
}
