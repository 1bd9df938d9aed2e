package reporters

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/ensemble"
	"github.com/timtadh/motifs/motif"
)

// HTML writes a page listing the interesting motifs of the original network,
// most frequent first. Each motif links the image <id>.dot.png expected next
// to the page, as rendered from the output of Dot.
type HTML struct {
	encoding motif.Encoding
	path     string
}

func NewHTML(c *config.Config, encoding motif.Encoding, dir, filename string) (*HTML, error) {
	if filename == "" {
		filename = "motifs.html"
	}
	dir = c.OutputFile(dir)
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, err
	}
	return &HTML{encoding: encoding, path: filepath.Join(dir, filename)}, nil
}

func (r *HTML) Report(report *ensemble.Report) error {
	rows := make([]ensemble.Row, 0, len(report.Rows))
	for _, row := range report.Rows {
		net, err := r.encoding.Decode(report.K, row.Id)
		if err != nil {
			return err
		}
		if net.Interesting() {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Original == rows[j].Original {
			return rows[i].Id > rows[j].Id
		}
		return rows[i].Original > rows[j].Original
	})
	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprint(w, "<html><body><table>")
	for _, row := range rows {
		fmt.Fprintf(w, `<tr><td><img src="%d.dot.png"></td><td>%d</td>`, uint64(row.Id), row.Original)
	}
	fmt.Fprint(w, "</table></body></html>")
	werr := w.Flush()
	err = f.Close()
	if werr != nil {
		return werr
	}
	return err
}

func (r *HTML) Close() error {
	return nil
}
