package simulation

import (
	"fmt"
	"math"

	"github.com/quantfold/ordersim/src/engine/flex"
	"github.com/quantfold/ordersim/src/engine/models"
)

// Config is the explicit run configuration threaded into Simulate. There are
// no process-wide defaults: everything an order needs is either a flexible
// array over the (NumSteps x NumCols) grid or a per-column slice that
// broadcasts when it holds a single element.
type Config struct {
	NumSteps int
	NumCols  int

	// InitCash is per group, broadcast when it holds one element.
	InitCash []float64
	Groups   GroupSpec

	Open  flex.Float64
	High  flex.Float64
	Low   flex.Float64
	Close flex.Float64

	Size  flex.Float64
	Price flex.Float64

	SizeType  []models.SizeType
	Direction []models.Direction

	Fees            flex.Float64
	FixedFees       flex.Float64
	Slippage        flex.Float64
	MinSize         flex.Float64
	MaxSize         flex.Float64
	SizeGranularity flex.Float64
	Leverage        flex.Float64
	LeverageMode    []models.LeverageMode
	RejectProb      flex.Float64

	PriceAreaVioMode []models.PriceAreaViolationMode
	AllowPartial     []bool
	RaiseOnReject    []bool
	Log              []bool

	// ValueGrid requests the per-step close valuation of every group.
	ValueGrid bool
	// Parallel runs independent groups on worker goroutines.
	Parallel bool
	// Seed drives reject-probability fault injection deterministically.
	Seed int64
}

func defaultFlex(a flex.Float64, v float64) flex.Float64 {
	if a.Data == nil {
		return flex.Constant(v)
	}
	return a
}

// withDefaults fills every unset field with its documented default.
func (cfg Config) withDefaults() Config {
	cfg.Open = defaultFlex(cfg.Open, math.NaN())
	cfg.High = defaultFlex(cfg.High, math.NaN())
	cfg.Low = defaultFlex(cfg.Low, math.NaN())
	cfg.Close = defaultFlex(cfg.Close, math.NaN())
	cfg.Size = defaultFlex(cfg.Size, math.NaN())
	cfg.Price = defaultFlex(cfg.Price, math.Inf(1))
	cfg.Fees = defaultFlex(cfg.Fees, 0)
	cfg.FixedFees = defaultFlex(cfg.FixedFees, 0)
	cfg.Slippage = defaultFlex(cfg.Slippage, 0)
	cfg.MinSize = defaultFlex(cfg.MinSize, math.NaN())
	cfg.MaxSize = defaultFlex(cfg.MaxSize, math.NaN())
	cfg.SizeGranularity = defaultFlex(cfg.SizeGranularity, math.NaN())
	cfg.Leverage = defaultFlex(cfg.Leverage, 1)
	cfg.RejectProb = defaultFlex(cfg.RejectProb, 0)
	if len(cfg.InitCash) == 0 {
		cfg.InitCash = []float64{100}
	}
	if len(cfg.SizeType) == 0 {
		cfg.SizeType = []models.SizeType{models.SizeTypeAmount}
	}
	if len(cfg.Direction) == 0 {
		cfg.Direction = []models.Direction{models.DirectionBoth}
	}
	if len(cfg.LeverageMode) == 0 {
		cfg.LeverageMode = []models.LeverageMode{models.LeverageModeLazy}
	}
	if len(cfg.PriceAreaVioMode) == 0 {
		cfg.PriceAreaVioMode = []models.PriceAreaViolationMode{models.PriceAreaViolationModeIgnore}
	}
	if len(cfg.AllowPartial) == 0 {
		cfg.AllowPartial = []bool{true}
	}
	if len(cfg.RaiseOnReject) == 0 {
		cfg.RaiseOnReject = []bool{false}
	}
	if len(cfg.Log) == 0 {
		cfg.Log = []bool{false}
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.NumSteps <= 0 {
		return fmt.Errorf("number of time steps must be positive, got %d", cfg.NumSteps)
	}
	if cfg.NumCols <= 0 {
		return fmt.Errorf("number of columns must be positive, got %d", cfg.NumCols)
	}
	if err := cfg.Groups.Validate(cfg.NumCols); err != nil {
		return fmt.Errorf("invalid grouping: %w", err)
	}

	numGroups := cfg.Groups.NumGroups(cfg.NumCols)
	if len(cfg.InitCash) != 1 && len(cfg.InitCash) != numGroups {
		return fmt.Errorf("init cash has %d elements, want 1 or %d", len(cfg.InitCash), numGroups)
	}

	flexInputs := map[string]flex.Float64{
		"open":             cfg.Open,
		"high":             cfg.High,
		"low":              cfg.Low,
		"close":            cfg.Close,
		"size":             cfg.Size,
		"price":            cfg.Price,
		"fees":             cfg.Fees,
		"fixed_fees":       cfg.FixedFees,
		"slippage":         cfg.Slippage,
		"min_size":         cfg.MinSize,
		"max_size":         cfg.MaxSize,
		"size_granularity": cfg.SizeGranularity,
		"leverage":         cfg.Leverage,
		"reject_prob":      cfg.RejectProb,
	}
	for name, a := range flexInputs {
		if err := a.Validate(cfg.NumSteps, cfg.NumCols); err != nil {
			return fmt.Errorf("invalid %s input: %w", name, err)
		}
	}

	if err := validateBroadcast("size_type", len(cfg.SizeType), cfg.NumCols); err != nil {
		return err
	}
	for _, v := range cfg.SizeType {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := validateBroadcast("direction", len(cfg.Direction), cfg.NumCols); err != nil {
		return err
	}
	for _, v := range cfg.Direction {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := validateBroadcast("leverage_mode", len(cfg.LeverageMode), cfg.NumCols); err != nil {
		return err
	}
	for _, v := range cfg.LeverageMode {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := validateBroadcast("price_area_violation_mode", len(cfg.PriceAreaVioMode), cfg.NumCols); err != nil {
		return err
	}
	for _, v := range cfg.PriceAreaVioMode {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := validateBroadcast("allow_partial", len(cfg.AllowPartial), cfg.NumCols); err != nil {
		return err
	}
	if err := validateBroadcast("raise_on_reject", len(cfg.RaiseOnReject), cfg.NumCols); err != nil {
		return err
	}
	if err := validateBroadcast("log", len(cfg.Log), cfg.NumCols); err != nil {
		return err
	}
	return nil
}

func validateBroadcast(name string, got, cols int) error {
	if got != 1 && got != cols {
		return fmt.Errorf("%s has %d elements, want 1 or %d", name, got, cols)
	}
	return nil
}

// at broadcasts a per-column (or per-group) slice: a single element applies
// everywhere.
func at[T any](s []T, i int) T {
	if len(s) == 1 {
		return s[0]
	}
	return s[i]
}

// orderAt assembles the order request for one grid element.
func (cfg Config) orderAt(i, c int) models.Order {
	o := models.DefaultOrder()
	o.Size = cfg.Size.At(i, c)
	o.Price = cfg.Price.At(i, c)
	o.SizeType = at(cfg.SizeType, c)
	o.Direction = at(cfg.Direction, c)
	o.Fees = cfg.Fees.At(i, c)
	o.FixedFees = cfg.FixedFees.At(i, c)
	o.Slippage = cfg.Slippage.At(i, c)
	o.MinSize = cfg.MinSize.At(i, c)
	o.MaxSize = cfg.MaxSize.At(i, c)
	o.SizeGranularity = cfg.SizeGranularity.At(i, c)
	o.Leverage = cfg.Leverage.At(i, c)
	o.LeverageMode = at(cfg.LeverageMode, c)
	o.RejectProb = cfg.RejectProb.At(i, c)
	o.PriceAreaVioMode = at(cfg.PriceAreaVioMode, c)
	o.AllowPartial = at(cfg.AllowPartial, c)
	o.RaiseOnReject = at(cfg.RaiseOnReject, c)
	o.Log = at(cfg.Log, c)
	return o
}

func (cfg Config) anyLogging() bool {
	for _, v := range cfg.Log {
		if v {
			return true
		}
	}
	return false
}
