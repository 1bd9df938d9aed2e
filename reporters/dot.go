package reporters

import (
	"fmt"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/ensemble"
	"github.com/timtadh/motifs/motif"
)

// Dot writes the diagram of every reported motif to <dir>/<id>.dot.
type Dot struct {
	encoding motif.Encoding
	dir      string
}

func NewDot(c *config.Config, encoding motif.Encoding, dir string) (*Dot, error) {
	dir = c.OutputFile(dir)
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, err
	}
	return &Dot{encoding: encoding, dir: dir}, nil
}

func (r *Dot) Report(report *ensemble.Report) error {
	for _, row := range report.Rows {
		if err := r.write(report.K, row.Id); err != nil {
			return err
		}
	}
	errors.Logf("DEBUG", "wrote %v diagrams to %v", len(report.Rows), r.dir)
	return nil
}

func (r *Dot) write(k int, id motif.Id) error {
	net, err := r.encoding.Decode(k, id)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(r.dir, fmt.Sprintf("%d.dot", uint64(id))))
	if err != nil {
		return err
	}
	ferr := net.FormatDot(f)
	err = f.Close()
	if ferr != nil {
		return ferr
	}
	return err
}

func (r *Dot) Close() error {
	return nil
}
