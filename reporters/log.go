package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/ensemble"
	"github.com/timtadh/motifs/stats"
)

type Log struct {
	level  string
	prefix string
	count  int
}

func NewLog(level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{level: level, prefix: prefix}
}

func (lr *Log) Report(report *ensemble.Report) error {
	errors.Logf(lr.level, "%v%v motifs of size %v against %v ensemble networks", lr.label(), len(report.Rows), report.K, report.Networks)
	for i := range report.Rows {
		row := &report.Rows[i]
		lr.count++
		errors.Logf(lr.level, "%v%v motif %v original %v ensemble mean %v sd %v (z = %v, above = %v)",
			lr.label(), lr.count, row.Id, row.Original,
			stats.Round(row.Mean(), 3), stats.Round(row.StdDev(), 3),
			stats.Round(row.ZScore(), 3), stats.Round(row.Above(), 3))
	}
	return nil
}

func (lr *Log) label() string {
	if lr.prefix == "" {
		return ""
	}
	return lr.prefix + " "
}

func (lr *Log) Close() error {
	return nil
}
