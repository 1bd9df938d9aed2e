package reporters

import (
	"github.com/timtadh/motifs/ensemble"
	"github.com/timtadh/motifs/motif"
)

// filter passes the rows that keep accepts on to the inner reporter.
func filter(report *ensemble.Report, rptr Reporter, keep func(row *ensemble.Row) (bool, error)) error {
	filtered := &ensemble.Report{
		K:        report.K,
		Networks: report.Networks,
		Rows:     make([]ensemble.Row, 0, len(report.Rows)),
	}
	for i := range report.Rows {
		if ok, err := keep(&report.Rows[i]); err != nil {
			return err
		} else if ok {
			filtered.Rows = append(filtered.Rows, report.Rows[i])
		}
	}
	return rptr.Report(filtered)
}

// Interesting only reports motifs that close a cycle when edge direction is
// ignored.
type Interesting struct {
	Encoding motif.Encoding
	Reporter Reporter
}

func NewInteresting(encoding motif.Encoding, reporter Reporter) *Interesting {
	return &Interesting{
		Encoding: encoding,
		Reporter: reporter,
	}
}

func (r *Interesting) Report(report *ensemble.Report) error {
	return filter(report, r.Reporter, func(row *ensemble.Row) (bool, error) {
		net, err := r.Encoding.Decode(report.K, row.Id)
		if err != nil {
			return false, err
		}
		return net.Interesting(), nil
	})
}

func (r *Interesting) Close() error {
	return r.Reporter.Close()
}

// Significant reports the motifs whose z-score is at least MinZ and which
// occur in at most MaxAbove of the ensemble members as often as in the
// original.
type Significant struct {
	MinZ     float64
	MaxAbove float64
	Reporter Reporter
}

func NewSignificant(minZ, maxAbove float64, reporter Reporter) *Significant {
	return &Significant{
		MinZ:     minZ,
		MaxAbove: maxAbove,
		Reporter: reporter,
	}
}

func (r *Significant) Report(report *ensemble.Report) error {
	return filter(report, r.Reporter, func(row *ensemble.Row) (bool, error) {
		return row.ZScore() >= r.MinZ && row.Above() <= r.MaxAbove, nil
	})
}

func (r *Significant) Close() error {
	return r.Reporter.Close()
}

// Frequent reports the motifs occurring at least Min times in the original.
type Frequent struct {
	Min      int
	Reporter Reporter
}

func NewFrequent(min int, rptr Reporter) *Frequent {
	return &Frequent{
		Min:      min,
		Reporter: rptr,
	}
}

func (r *Frequent) Report(report *ensemble.Report) error {
	return filter(report, r.Reporter, func(row *ensemble.Row) (bool, error) {
		return row.Original >= r.Min, nil
	})
}

func (r *Frequent) Close() error {
	return r.Reporter.Close()
}
