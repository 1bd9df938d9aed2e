package reporters

import (
	"github.com/timtadh/motifs/ensemble"
)

// Reporter consumes the finished comparison of an original network against
// its ensemble. Close is called once after the last Report.
type Reporter interface {
	Report(r *ensemble.Report) error
	Close() error
}

type Chain struct {
	Reporters []Reporter
}

func (r *Chain) Report(report *ensemble.Report) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(report)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Chain) Close() error {
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
