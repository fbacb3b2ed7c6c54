package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/quantfold/ordersim/src/engine/execution"
	"github.com/quantfold/ordersim/src/engine/models"
)

// Result is the output of one simulation run: the trimmed record streams and
// the optional per-step group valuation grid. The order record stream alone
// is sufficient to replay the full ledger history deterministically.
type Result struct {
	RunID      uuid.UUID
	Records    []models.OrderRecord
	Logs       []models.LogRecord
	ValueGrid  [][]float64
	FillCounts []int
}

// Simulate executes the order grid described by cfg: for each group, for
// each time step, it values the group at the bar open, orders the group's
// columns by estimated cash impact so cash-releasing orders run first, and
// executes them threading the shared cash through each fill. Hard
// validation failures abort the run; soft rejections only leave the ledger
// untouched.
func Simulate(cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	groups := cfg.Groups.Resolve(cfg.NumCols)
	rb := execution.NewRecordBuffer(cfg.NumSteps, cfg.NumCols)
	var lb *execution.LogBuffer
	if cfg.anyLogging() {
		lb = execution.NewLogBuffer(cfg.NumSteps, cfg.NumCols)
	}
	var grid [][]float64
	if cfg.ValueGrid {
		grid = make([][]float64, cfg.NumSteps)
		for i := range grid {
			grid[i] = make([]float64, len(groups))
		}
	}

	if cfg.Parallel && len(groups) > 1 {
		var wg sync.WaitGroup
		errs := make([]error, len(groups))
		for gi, cols := range groups {
			wg.Add(1)
			go func(gi int, cols []int) {
				defer wg.Done()
				errs[gi] = simulateGroup(cfg, gi, cols, rb, lb, grid)
			}(gi, cols)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	} else {
		for gi, cols := range groups {
			if err := simulateGroup(cfg, gi, cols, rb, lb, grid); err != nil {
				return nil, err
			}
		}
	}

	res := &Result{
		RunID:      uuid.New(),
		Records:    rb.Trim(),
		FillCounts: rb.Counts(),
		ValueGrid:  grid,
	}
	if lb != nil {
		res.Logs = lb.Trim()
	}

	log.Infof("simulation %s: %d orders filled across %d columns in %d groups", res.RunID, len(res.Records), cfg.NumCols, len(groups))
	return res, nil
}

// simulateGroup runs all time steps of one capital-sharing group. Time steps
// are strictly sequential; groups are mutually independent.
func simulateGroup(cfg Config, gi int, cols []int, rb *execution.RecordBuffer, lb *execution.LogBuffer, grid [][]float64) error {
	initCash := at(cfg.InitCash, gi)
	cash := initCash
	freeCash := initCash

	n := len(cols)
	position := make([]float64, n)
	debt := make([]float64, n)
	locked := make([]float64, n)
	estimates := make([]float64, n)
	seq := make([]int, n)

	// a per-group source keeps parallel runs deterministic for a given seed
	rng := rand.New(rand.NewSource(cfg.Seed + int64(gi)*7919))

	for i := 0; i < cfg.NumSteps; i++ {
		// (a) value the group at the bar open
		groupValue := groupValueAt(cfg, cash, cols, position, debt, i)

		// (b) estimate every column's cash impact and build the call sequence
		for k, c := range cols {
			seq[k] = k
			st := groupExecState(cash, freeCash, position[k], debt[k], locked[k], cfg.Open.At(i, c), groupValue)
			estimates[k] = approxOrderValue(st, cfg.orderAt(i, c))
		}
		insertArgsort(estimates, seq)

		// (c) execute in call-sequence order, threading the shared cash
		for _, k := range seq {
			c := cols[k]
			o := cfg.orderAt(i, c)
			if math.IsNaN(o.Size) {
				continue
			}
			area := models.NewPriceArea(cfg.Open.At(i, c), cfg.High.At(i, c), cfg.Low.At(i, c), cfg.Close.At(i, c))
			groupValue = groupValueAt(cfg, cash, cols, position, debt, i)
			st := groupExecState(cash, freeCash, position[k], debt[k], locked[k], cfg.Open.At(i, c), groupValue)

			res, newSt, err := execution.ProcessOrder(st, o, area, c, i, rb, lb, rng)
			if err != nil {
				return fmt.Errorf("group %d col %d step %d: %w", gi, c, i, err)
			}
			if res.Status.IsFilled() {
				cash = newSt.Cash
				freeCash = newSt.FreeCash
				position[k] = newSt.Position
				debt[k] = newSt.Debt
				locked[k] = newSt.LockedCash
			}
		}

		// (d) re-value at the close for reporting
		if grid != nil {
			v := cash
			for k, c := range cols {
				cp := cfg.Close.At(i, c)
				if position[k] != 0 && !math.IsNaN(cp) {
					v += position[k] * cp
				}
				if position[k] > 0 {
					v -= debt[k]
				}
			}
			grid[i][gi] = v
		}
	}

	return nil
}

func groupValueAt(cfg Config, cash float64, cols []int, position, debt []float64, i int) float64 {
	v := cash
	for k, c := range cols {
		vp := cfg.Open.At(i, c)
		if position[k] != 0 && !math.IsNaN(vp) {
			v += position[k] * vp
		}
		if position[k] > 0 {
			v -= debt[k]
		}
	}
	return v
}

// groupExecState builds the execution view of one column: the column's own
// position, debt and locked cash over the group's shared cash and value.
func groupExecState(cash, freeCash, position, debt, locked, valPrice, value float64) models.ExecState {
	return models.ExecState{
		AccountState: models.AccountState{
			Cash:       cash,
			Position:   position,
			Debt:       debt,
			LockedCash: locked,
			FreeCash:   freeCash,
		},
		ValPrice: valPrice,
		Value:    value,
	}
}
