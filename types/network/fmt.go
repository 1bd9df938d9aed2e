package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Dot renders the network for graphviz (neato). Nodes are pinned evenly on
// the unit circle so every motif of the same size has the same layout.
func (n *Network) Dot() string {
	var buf bytes.Buffer
	n.FormatDot(&buf)
	return buf.String()
}

func (n *Network) FormatDot(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return err
	}
	for i := range n.V {
		t := 2 * math.Pi * float64(i) / float64(len(n.V))
		_, err := fmt.Fprintf(w, "  %d [pin=true,pos=\"%.3f,%.3f\",shape=point]\n", i, math.Sin(t), math.Cos(t))
		if err != nil {
			return err
		}
	}
	for _, e := range n.E {
		_, err := fmt.Fprintf(w, "  %d -> %d [arrowhead=%s]\n", e.Src, e.Targ, Arrowhead(e.Weight))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "}")
	return err
}

func Arrowhead(w Weight) string {
	switch w {
	case 1:
		return "onormal"
	case 3:
		return "diamond"
	default:
		return "circle"
	}
}

// FormatVeg writes the network in the format read by VegLoader. Vertex ids
// are the node indices.
func (n *Network) FormatVeg(w io.Writer) error {
	for _, v := range n.V {
		label, err := json.Marshal(v.Label)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "vertex\t{\"id\":%d,\"label\":%s}\n", v.Idx, label); err != nil {
			return err
		}
	}
	for _, e := range n.E {
		if _, err := fmt.Fprintf(w, "edge\t{\"src\":%d,\"targ\":%d,\"label\":\"%d\"}\n", e.Src, e.Targ, e.Weight); err != nil {
			return err
		}
	}
	return nil
}
