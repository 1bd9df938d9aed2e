package reporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/ensemble"
)

// CSV writes one line per motif: its id, the count in the original network
// and the count in every ensemble member (R1..Rn).
type CSV struct {
	out io.WriteCloser
	w   *csv.Writer
}

func NewCSV(c *config.Config, filename string) (*CSV, error) {
	if filename == "" {
		filename = "stats.csv"
	}
	out, err := os.Create(c.OutputFile(filename))
	if err != nil {
		return nil, err
	}
	return &CSV{out: out, w: csv.NewWriter(out)}, nil
}

func (r *CSV) Report(report *ensemble.Report) error {
	header := make([]string, 0, report.Networks+2)
	header = append(header, "MotifId", "Original")
	for i := 0; i < report.Networks; i++ {
		header = append(header, fmt.Sprintf("R%d", i+1))
	}
	if err := r.w.Write(header); err != nil {
		return err
	}
	for _, row := range report.Rows {
		line := make([]string, 0, len(header))
		line = append(line, fmt.Sprint(uint64(row.Id)), fmt.Sprint(row.Original))
		for _, c := range row.Ensemble {
			line = append(line, fmt.Sprint(c))
		}
		if err := r.w.Write(line); err != nil {
			return err
		}
	}
	r.w.Flush()
	return r.w.Error()
}

func (r *CSV) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.out.Close()
		return err
	}
	return r.out.Close()
}
