package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/ensemble"
)

// Count writes the number of reported motifs to a file in the output
// directory on Close.
type Count struct {
	config   *config.Config
	count    int
	filename string
}

func NewCount(c *config.Config, filename string) (*Count, error) {
	if filename == "" {
		return nil, errors.Errorf("count needs a filename")
	}
	r := &Count{
		config:   c,
		filename: filename,
	}
	return r, nil
}

func (r *Count) Report(report *ensemble.Report) error {
	r.count += len(report.Rows)
	return nil
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v\n", r.count)
	err = f.Close()
	if perr != nil {
		return perr
	}
	return err
}
