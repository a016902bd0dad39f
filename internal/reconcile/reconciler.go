package reconcile

import "github.com/poboll/tictactoe-arm/internal/entity"

const (
	OutcomeAccepted  = "accepted"
	OutcomeUnchanged = "unchanged"
	OutcomeAnomaly   = "anomaly"
)

// Outcome is the reconciler's verdict on one raw snapshot. State and Cell
// are set only for accepted outcomes, Anomaly only for rejected ones.
type Outcome struct {
	Kind    string
	State   entity.Board
	Cell    int
	Anomaly *entity.Anomaly
}

// Reconcile compares a raw snapshot against the last accepted board and
// classifies the delta. The caller must pass a debounced snapshot: a single
// unconfirmed frame is not trusted evidence, and that policy lives with the
// session controller, not here.
//
// expected is the mark the current mover is supposed to place; a single
// legal addition of the wrong mark is rejected as unreliable.
func Reconcile(previous, raw entity.Board, expected string) Outcome {
	changed := previous.Diff(raw)

	if len(changed) == 0 {
		return Outcome{Kind: OutcomeUnchanged}
	}

	if len(changed) == 1 {
		return reconcileSingle(previous, raw, changed[0], expected)
	}

	return Outcome{
		Kind:    OutcomeAnomaly,
		Anomaly: multiCellReport(previous, raw, changed),
	}
}

func reconcileSingle(previous, raw entity.Board, cell int, expected string) Outcome {
	if previous[cell] != entity.EmptyCell {
		// An accepted piece was removed or overwritten.
		return Outcome{
			Kind: OutcomeAnomaly,
			Anomaly: &entity.Anomaly{
				Kind:    entity.AnomalyRetraction,
				Origin:  cell,
				Target:  cell,
				NewMark: raw[cell],
				Changed: []int{cell},
			},
		}
	}

	if raw[cell] != expected {
		// A piece appeared, but not the mover's color.
		return Outcome{
			Kind: OutcomeAnomaly,
			Anomaly: &entity.Anomaly{
				Kind:    entity.AnomalyMultiCell,
				Origin:  cell,
				Target:  cell,
				NewMark: raw[cell],
				Changed: []int{cell},
			},
		}
	}

	return Outcome{
		Kind:  OutcomeAccepted,
		State: raw,
		Cell:  cell,
	}
}

// multiCellReport builds the diagnostic report for a multi-cell delta. When
// the delta is exactly one piece relocated (one cell vacated, one cell
// gaining the same mark), the origin and target identify the relocation so
// the alert frame can name it; otherwise both point at the first changed
// cell and the full index set is the only reliable information.
func multiCellReport(previous, raw entity.Board, changed []int) *entity.Anomaly {
	report := &entity.Anomaly{
		Kind:    entity.AnomalyMultiCell,
		Origin:  changed[0],
		Target:  changed[0],
		Changed: changed,
	}

	if len(changed) != 2 {
		return report
	}

	a, b := changed[0], changed[1]
	if vacated, added := relocationPair(previous, raw, a, b); vacated >= 0 {
		report.Origin = vacated
		report.Target = added
		report.NewMark = raw[added]
	}

	return report
}

func relocationPair(previous, raw entity.Board, a, b int) (int, int) {
	if previous[a] != entity.EmptyCell && raw[a] == entity.EmptyCell &&
		previous[b] == entity.EmptyCell && raw[b] == previous[a] {
		return a, b
	}

	if previous[b] != entity.EmptyCell && raw[b] == entity.EmptyCell &&
		previous[a] == entity.EmptyCell && raw[a] == previous[b] {
		return b, a
	}

	return -1, -1
}
