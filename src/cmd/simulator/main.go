package main

import (
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quantfold/ordersim/src/engine/flex"
	"github.com/quantfold/ordersim/src/engine/models"
	"github.com/quantfold/ordersim/src/engine/simulation"
	"github.com/quantfold/ordersim/src/utils"
)

// BarRow is one bar of one column in the long-format input CSV.
type BarRow struct {
	Idx   int     `csv:"idx"`
	Col   int     `csv:"col"`
	Open  float64 `csv:"open"`
	High  float64 `csv:"high"`
	Low   float64 `csv:"low"`
	Close float64 `csv:"close"`
}

// SizeRow is one order instruction in the long-format size CSV. Grid
// elements without a row stay NaN, meaning no order.
type SizeRow struct {
	Idx  int     `csv:"idx"`
	Col  int     `csv:"col"`
	Size float64 `csv:"size"`
}

// RunConfig is the YAML run configuration. Every field is optional; the
// engine defaults apply to anything omitted.
type RunConfig struct {
	InitCash        []float64 `yaml:"init_cash"`
	GroupLens       []int     `yaml:"group_lens"`
	GroupCols       []int     `yaml:"group_cols"`
	Size            *float64  `yaml:"size"`
	SizeType        string    `yaml:"size_type"`
	Direction       string    `yaml:"direction"`
	Fees            float64   `yaml:"fees"`
	FixedFees       float64   `yaml:"fixed_fees"`
	Slippage        float64   `yaml:"slippage"`
	Leverage        *float64  `yaml:"leverage"`
	LeverageMode    string    `yaml:"leverage_mode"`
	SizeGranularity *float64  `yaml:"size_granularity"`
	AllowPartial    *bool     `yaml:"allow_partial"`
	Log             bool      `yaml:"log"`
	Seed            int64     `yaml:"seed"`
	Parallel        bool      `yaml:"parallel"`
}

func loadRunConfig(path string) (*RunConfig, error) {
	rc := &RunConfig{}
	if path == "" {
		return rc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config: %w", err)
	}
	if err := yaml.Unmarshal(data, rc); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}
	return rc, nil
}

func loadBars(path string) ([]*BarRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bars file: %w", err)
	}
	defer f.Close()

	var rows []*BarRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse bars file: %w", err)
	}
	return rows, nil
}

func loadSizes(path string) ([]*SizeRow, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open size file: %w", err)
	}
	defer f.Close()

	var rows []*SizeRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse size file: %w", err)
	}
	return rows, nil
}

func buildConfig(bars []*BarRow, sizes []*SizeRow, rc *RunConfig) (simulation.Config, error) {
	if len(bars) == 0 {
		return simulation.Config{}, fmt.Errorf("bars file is empty")
	}

	numSteps, numCols := 0, 0
	for _, b := range bars {
		if b.Idx < 0 || b.Col < 0 {
			return simulation.Config{}, fmt.Errorf("bar indices must be non-negative, got idx=%d col=%d", b.Idx, b.Col)
		}
		if b.Idx+1 > numSteps {
			numSteps = b.Idx + 1
		}
		if b.Col+1 > numCols {
			numCols = b.Col + 1
		}
	}

	nanGrid := func() []float64 {
		g := make([]float64, numSteps*numCols)
		for i := range g {
			g[i] = math.NaN()
		}
		return g
	}
	open, high, low, closeGrid := nanGrid(), nanGrid(), nanGrid(), nanGrid()
	for _, b := range bars {
		at := b.Idx*numCols + b.Col
		open[at] = b.Open
		high[at] = b.High
		low[at] = b.Low
		closeGrid[at] = b.Close
	}

	cfg := simulation.Config{
		NumSteps: numSteps,
		NumCols:  numCols,
		InitCash: rc.InitCash,
		Open:     flex.PerElement(open, numSteps, numCols),
		High:     flex.PerElement(high, numSteps, numCols),
		Low:      flex.PerElement(low, numSteps, numCols),
		Close:    flex.PerElement(closeGrid, numSteps, numCols),
		Fees:     flex.Constant(rc.Fees),
		Slippage: flex.Constant(rc.Slippage),
		Seed:     rc.Seed,
		Parallel: rc.Parallel,
		Log:      []bool{rc.Log},
	}
	cfg.FixedFees = flex.Constant(rc.FixedFees)
	cfg.ValueGrid = true

	if len(rc.GroupLens) > 0 {
		if len(rc.GroupCols) > 0 {
			cfg.Groups = simulation.Scattered(rc.GroupCols, rc.GroupLens)
		} else {
			cfg.Groups = simulation.Monolithic(rc.GroupLens...)
		}
	}

	switch {
	case len(sizes) > 0:
		sizeGrid := nanGrid()
		for _, s := range sizes {
			if s.Idx < 0 || s.Idx >= numSteps || s.Col < 0 || s.Col >= numCols {
				return simulation.Config{}, fmt.Errorf("size row (idx=%d, col=%d) outside the %dx%d bar grid", s.Idx, s.Col, numSteps, numCols)
			}
			sizeGrid[s.Idx*numCols+s.Col] = s.Size
		}
		cfg.Size = flex.PerElement(sizeGrid, numSteps, numCols)
	case rc.Size != nil:
		cfg.Size = flex.Constant(*rc.Size)
	}

	if rc.SizeType != "" {
		cfg.SizeType = []models.SizeType{models.SizeType(rc.SizeType)}
	}
	if rc.Direction != "" {
		cfg.Direction = []models.Direction{models.Direction(rc.Direction)}
	}
	if rc.LeverageMode != "" {
		cfg.LeverageMode = []models.LeverageMode{models.LeverageMode(rc.LeverageMode)}
	}
	if rc.Leverage != nil {
		cfg.Leverage = flex.Constant(*rc.Leverage)
	}
	if rc.SizeGranularity != nil {
		cfg.SizeGranularity = flex.Constant(*rc.SizeGranularity)
	}
	if rc.AllowPartial != nil {
		cfg.AllowPartial = []bool{*rc.AllowPartial}
	}

	return cfg, nil
}

func printRecords(records []models.OrderRecord) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Col", "Idx", "Side", "Size", "Price", "Fees"})
	for _, r := range records {
		table.Append([]string{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Col),
			fmt.Sprintf("%d", r.Idx),
			string(r.Side),
			fmt.Sprintf("%.4f", r.Size),
			fmt.Sprintf("%.4f", r.Price),
			fmt.Sprintf("%.4f", r.Fees),
		})
	}
	table.Render()
}

func printSummary(res *simulation.Result, initCash []float64) error {
	if len(res.ValueGrid) == 0 {
		return nil
	}

	equity := make([]float64, 0, len(res.ValueGrid))
	for _, row := range res.ValueGrid {
		total := 0.0
		for _, v := range row {
			total += v
		}
		equity = append(equity, total)
	}

	mean, err := stats.Mean(equity)
	if err != nil {
		return fmt.Errorf("failed to compute equity mean: %w", err)
	}
	stdDev, err := stats.StandardDeviation(equity)
	if err != nil {
		return fmt.Errorf("failed to compute equity std dev: %w", err)
	}
	minEq, err := stats.Min(equity)
	if err != nil {
		return fmt.Errorf("failed to compute equity min: %w", err)
	}
	maxEq, err := stats.Max(equity)
	if err != nil {
		return fmt.Errorf("failed to compute equity max: %w", err)
	}

	startCash := 0.0
	groups := len(res.ValueGrid[0])
	for g := 0; g < groups; g++ {
		if len(initCash) == 1 {
			startCash += initCash[0]
		} else if g < len(initCash) {
			startCash += initCash[g]
		}
	}
	final := equity[len(equity)-1]

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Orders filled", fmt.Sprintf("%d", len(res.Records))})
	table.Append([]string{"Final equity", fmt.Sprintf("%.4f", final)})
	if startCash > 0 {
		table.Append([]string{"Total return", fmt.Sprintf("%.4f%%", (final/startCash-1)*100)})
	}
	table.Append([]string{"Equity mean", fmt.Sprintf("%.4f", mean)})
	table.Append([]string{"Equity std dev", fmt.Sprintf("%.4f", stdDev)})
	table.Append([]string{"Equity min", fmt.Sprintf("%.4f", minEq)})
	table.Append([]string{"Equity max", fmt.Sprintf("%.4f", maxEq)})
	table.Render()
	return nil
}

func writeRecords(path string, records []models.OrderRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(models.OrderRecordsToDTO(records), f); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

func run(barsPath, sizePath, configPath, outPath string) error {
	rc, err := loadRunConfig(configPath)
	if err != nil {
		return err
	}
	bars, err := loadBars(barsPath)
	if err != nil {
		return err
	}
	sizes, err := loadSizes(sizePath)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(bars, sizes, rc)
	if err != nil {
		return err
	}

	res, err := simulation.Simulate(cfg)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printRecords(res.Records)
	if err := printSummary(res, cfg.InitCash); err != nil {
		return err
	}

	if outPath != "" {
		if err := writeRecords(outPath, res.Records); err != nil {
			return err
		}
		log.Infof("wrote %d order records to %s", len(res.Records), outPath)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "simulator --bars bars.csv [--size size.csv] [--config run.yaml] [--out records.csv]",
	Short: "Run a deterministic order-execution simulation over a bar grid",
	Run: func(cmd *cobra.Command, args []string) {
		barsPath, err := cmd.Flags().GetString("bars")
		if err != nil {
			log.Fatalf("error getting bars flag: %v", err)
		}
		sizePath, err := cmd.Flags().GetString("size")
		if err != nil {
			log.Fatalf("error getting size flag: %v", err)
		}
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config flag: %v", err)
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out flag: %v", err)
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			log.Fatalf("error getting verbose flag: %v", err)
		}
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		if err := run(barsPath, sizePath, configPath, outPath); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func main() {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Fatalf("failed to init environment: %v", err)
	}

	rootCmd.Flags().String("bars", "", "path to the bars CSV (idx,col,open,high,low,close)")
	rootCmd.Flags().String("size", "", "path to the size CSV (idx,col,size)")
	rootCmd.Flags().String("config", "", "path to the YAML run config")
	rootCmd.Flags().String("out", "", "path to write the trimmed order records CSV")
	rootCmd.Flags().Bool("verbose", false, "enable debug logging")
	rootCmd.MarkFlagRequired("bars")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
