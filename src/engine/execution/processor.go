package execution

import (
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/quantfold/ordersim/src/engine/models"
)

// RecordBuffer is a caller-owned, fixed-capacity store of order records.
// Each column writes into its own contiguous region, so concurrent groups
// never need a lock: disjointness holds by construction.
type RecordBuffer struct {
	records   []models.OrderRecord
	counts    []int
	maxPerCol int
}

// NewRecordBuffer allocates room for maxPerCol records in each of numCols
// columns. Callers must size maxPerCol to the worst case, one record per bar.
func NewRecordBuffer(maxPerCol, numCols int) *RecordBuffer {
	return &RecordBuffer{
		records:   make([]models.OrderRecord, maxPerCol*numCols),
		counts:    make([]int, numCols),
		maxPerCol: maxPerCol,
	}
}

// Append writes the record of a filled order at the column's running counter.
// Overflow is a fatal precondition violation, not a recoverable condition.
func (b *RecordBuffer) Append(col, idx int, res models.OrderResult) error {
	n := b.counts[col]
	if n >= b.maxPerCol {
		return models.ErrRecordBufferFull
	}
	b.records[col*b.maxPerCol+n] = models.OrderRecord{
		ID:    n,
		Col:   col,
		Idx:   idx,
		Size:  res.Size,
		Price: res.Price,
		Fees:  res.Fees,
		Side:  res.Side,
	}
	b.counts[col] = n + 1
	return nil
}

// Count returns the number of records written for a column.
func (b *RecordBuffer) Count(col int) int {
	return b.counts[col]
}

// Counts returns a copy of the per-column counters.
func (b *RecordBuffer) Counts() []int {
	out := make([]int, len(b.counts))
	copy(out, b.counts)
	return out
}

// Trim repartitions the per-column regions into one contiguous record
// stream ordered by column, then by id.
func (b *RecordBuffer) Trim() []models.OrderRecord {
	total := 0
	for _, n := range b.counts {
		total += n
	}
	out := make([]models.OrderRecord, 0, total)
	for col, n := range b.counts {
		out = append(out, b.records[col*b.maxPerCol:col*b.maxPerCol+n]...)
	}
	return out
}

// LogBuffer stores diagnostic log records with the same per-column layout as
// RecordBuffer. Unlike order records, a log record is written for every
// evaluated order with logging enabled, filled or not.
type LogBuffer struct {
	records   []models.LogRecord
	counts    []int
	maxPerCol int
}

func NewLogBuffer(maxPerCol, numCols int) *LogBuffer {
	return &LogBuffer{
		records:   make([]models.LogRecord, maxPerCol*numCols),
		counts:    make([]int, numCols),
		maxPerCol: maxPerCol,
	}
}

func (b *LogBuffer) Append(col, idx int, pre models.ExecState, o models.Order, area models.PriceArea, post models.ExecState, res models.OrderResult) error {
	n := b.counts[col]
	if n >= b.maxPerCol {
		return models.ErrLogBufferFull
	}
	b.records[col*b.maxPerCol+n] = models.LogRecord{
		ID:        n,
		Col:       col,
		Idx:       idx,
		PreState:  pre,
		Order:     o,
		PriceArea: area,
		PostState: post,
		Result:    res,
	}
	b.counts[col] = n + 1
	return nil
}

func (b *LogBuffer) Trim() []models.LogRecord {
	total := 0
	for _, n := range b.counts {
		total += n
	}
	out := make([]models.LogRecord, 0, total)
	for col, n := range b.counts {
		out = append(out, b.records[col*b.maxPerCol:col*b.maxPerCol+n]...)
	}
	return out
}

// ProcessOrder executes one order and persists its traces: an OrderRecord
// when it fills, and a LogRecord unconditionally when the order asks for
// logging. The input state is returned untouched on any failure.
func ProcessOrder(st models.ExecState, o models.Order, area models.PriceArea, col, idx int, rb *RecordBuffer, lb *LogBuffer, rng *rand.Rand) (models.OrderResult, models.ExecState, error) {
	res, newSt, execErr := ExecuteOrder(st, o, area, rng)

	if o.Log && lb != nil {
		if err := lb.Append(col, idx, st, o, area, newSt, res); err != nil {
			return res, st, err
		}
	}

	if execErr != nil {
		return res, st, execErr
	}

	if res.Status.IsFilled() {
		if err := rb.Append(col, idx, res); err != nil {
			return res, st, err
		}
	} else {
		log.Debugf("order not filled at col=%d idx=%d: status=%s info=%s", col, idx, res.Status, res.StatusInfo)
	}

	return res, newSt, nil
}
