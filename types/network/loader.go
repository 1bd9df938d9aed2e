package network

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

// Input opens a fresh reader over the same data each time it is called. The
// loaders read their input more than once.
type Input func() (reader io.Reader, closer func())

type Loader interface {
	Load(input Input) (*Network, error)
}

type ErrorList []error

func (self ErrorList) Error() string {
	var s []string
	for _, err := range self {
		s = append(s, err.Error())
	}
	return "Errors [" + strings.Join(s, ", ") + "]"
}

// MatrixLoader reads a whitespace separated n*n adjacency matrix. The tokens
// are the regulatory edge kinds: 0 (none), 1 (activation), 2 (dual) and -1
// (repression), stored as weights 0, 1, 2 and 3. The diagonal is ignored.
type MatrixLoader struct{}

var matrixWeights = map[string]Weight{
	"0":  0,
	"1":  1,
	"2":  2,
	"-1": 3,
}

func (l MatrixLoader) Load(input Input) (*Network, error) {
	var errs ErrorList
	weights := make([]Weight, 0, 1024)
	in, closer := input()
	defer closer()
	err := processLines(in, func(line []byte) {
		for _, tok := range bytes.Fields(line) {
			w, has := matrixWeights[string(tok)]
			if !has {
				errs = append(errs, errors.Errorf("unexpected matrix entry %q at position %v", tok, len(weights)))
				continue
			}
			weights = append(weights, w)
		}
	})
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}
	n := int(math.Sqrt(float64(len(weights))))
	for n*n < len(weights) {
		n++
	}
	if n*n != len(weights) {
		return nil, errors.Errorf("matrix has %v entries which is not a square", len(weights))
	}
	errors.Logf("DEBUG", "loaded %vx%v matrix", n, n)
	return FromMatrix(n, func(i, j int) Weight {
		if i == j {
			return 0
		}
		return weights[i*n+j]
	})
}

// IntLoader reads the line oriented int format:
//
//	v <id> <label>
//	e <src-id> <targ-id> <weight>
//
// Ids are arbitrary integers, they are mapped onto dense indices in the order
// the vertices appear. Lines containing # are skipped.
type IntLoader struct{}

func (l IntLoader) Load(input Input) (*Network, error) {
	var errs ErrorList
	V, E, err := intNetworkSize(input)
	if err != nil {
		return nil, err
	}
	errors.Logf("DEBUG", "Got network size %v %v", V, E)
	net := New(V, E)
	vids := hashtable.NewLinearHash() // int ==> node idx

	in, closer := input()
	defer closer()
	err = processLines(in, func(line []byte) {
		if len(bytes.TrimSpace(line)) == 0 || bytes.Contains(line, []byte("#")) {
			return
		}
		line_type, data := intParseLine(line)
		switch line_type {
		case "v":
			if err := l.loadVertex(net, vids, data); err != nil {
				errs = append(errs, err)
			}
		case "e":
			if err := l.loadEdge(net, vids, data); err != nil {
				errs = append(errs, err)
			}
		default:
			errs = append(errs, errors.Errorf("Unknown line type %v", line_type))
		}
	})
	if err != nil {
		return nil, err
	}
	if len(errs) == 0 {
		return net, nil
	}
	return nil, errs
}

func (l IntLoader) loadVertex(net *Network, vids types.Map, data []byte) (err error) {
	split := bytes.SplitN(data, []byte(" "), 2)
	id, err := strconv.Atoi(string(split[0]))
	if err != nil {
		return err
	}
	if vids.Has(types.Int(id)) {
		return errors.Errorf("duplicate vertex id %v", id)
	}
	label := strconv.Itoa(id)
	if len(split) == 2 {
		label = string(bytes.TrimSpace(split[1]))
	}
	return vids.Put(types.Int(id), net.AddNode(label))
}

func (l IntLoader) loadEdge(net *Network, vids types.Map, data []byte) (err error) {
	split := bytes.Fields(data)
	if len(split) != 3 {
		return errors.Errorf("edge line %q should be <src> <targ> <weight>", data)
	}
	ids := make([]int, 3)
	for i, part := range split {
		ids[i], err = strconv.Atoi(string(part))
		if err != nil {
			return err
		}
	}
	src, err := lookup(vids, ids[0])
	if err != nil {
		return err
	}
	targ, err := lookup(vids, ids[1])
	if err != nil {
		return err
	}
	if ids[2] < 0 || ids[2] > math.MaxUint8 {
		return errors.Errorf("edge weight %v out of range", ids[2])
	}
	return net.AddEdge(src, targ, Weight(ids[2]))
}

// VegLoader reads the tab separated veg format where each line is
//
//	vertex	{"id": <int>, "label": <string>}
//	edge	{"src": <int>, "targ": <int>, "label": <weight as string or int>}
type VegLoader struct{}

func (l VegLoader) Load(input Input) (*Network, error) {
	var errs ErrorList
	V, E, err := vegNetworkSize(input)
	if err != nil {
		return nil, err
	}
	net := New(V, E)
	vids := hashtable.NewLinearHash()

	in, closer := input()
	defer closer()
	err = processLines(in, func(line []byte) {
		if len(line) == 0 || !bytes.Contains(line, []byte("\t")) {
			return
		}
		line_type, data := vegParseLine(line)
		switch line_type {
		case "vertex":
			if err := l.loadVertex(net, vids, data); err != nil {
				errs = append(errs, err)
			}
		case "edge":
			if err := l.loadEdge(net, vids, data); err != nil {
				errs = append(errs, err)
			}
		default:
			errs = append(errs, errors.Errorf("Unknown line type %v", line_type))
		}
	})
	if err != nil {
		return nil, err
	}
	if len(errs) == 0 {
		return net, nil
	}
	return nil, errs
}

func (l VegLoader) loadVertex(net *Network, vids types.Map, data []byte) (err error) {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id, err := jsonInt(obj, "id")
	if err != nil {
		return err
	}
	label, _ := obj["label"].(string)
	return vids.Put(types.Int(id), net.AddNode(strings.TrimSpace(label)))
}

func (l VegLoader) loadEdge(net *Network, vids types.Map, data []byte) (err error) {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	sid, err := jsonInt(obj, "src")
	if err != nil {
		return err
	}
	tid, err := jsonInt(obj, "targ")
	if err != nil {
		return err
	}
	w, err := jsonInt(obj, "label")
	if err != nil {
		return err
	}
	src, err := lookup(vids, sid)
	if err != nil {
		return err
	}
	targ, err := lookup(vids, tid)
	if err != nil {
		return err
	}
	if w < 0 || w > math.MaxUint8 {
		return errors.Errorf("edge weight %v out of range", w)
	}
	return net.AddEdge(src, targ, Weight(w))
}

func lookup(vids types.Map, id int) (int, error) {
	o, err := vids.Get(types.Int(id))
	if err != nil {
		return 0, errors.Errorf("unknown vertex id %v", id)
	}
	return o.(int), nil
}

func jsonInt(obj map[string]interface{}, key string) (int, error) {
	switch v := obj[key].(type) {
	case json.Number:
		i, err := v.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, errors.Errorf("expected an integer for %q got %v", key, obj[key])
	}
}

func processLines(in io.Reader, process func([]byte)) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		unsafe := scanner.Bytes()
		line := make([]byte, len(unsafe))
		copy(line, unsafe)
		process(line)
	}
	return scanner.Err()
}

func parseJson(data []byte) (obj map[string]interface{}, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func intParseLine(line []byte) (line_type string, data []byte) {
	split := bytes.SplitN(bytes.TrimSpace(line), []byte(" "), 2)
	if len(split) < 2 {
		return strings.TrimSpace(string(split[0])), nil
	}
	return strings.TrimSpace(string(split[0])), bytes.TrimSpace(split[1])
}

func vegParseLine(line []byte) (line_type string, data []byte) {
	split := bytes.SplitN(line, []byte("\t"), 2)
	return strings.TrimSpace(string(split[0])), bytes.TrimSpace(split[1])
}

func intNetworkSize(input Input) (V, E int, err error) {
	in, closer := input()
	defer closer()
	err = processLines(in, func(line []byte) {
		if bytes.HasPrefix(line, []byte("v ")) {
			V++
		} else if bytes.HasPrefix(line, []byte("e ")) {
			E++
		}
	})
	if err != nil {
		return 0, 0, err
	}
	return V, E, nil
}

func vegNetworkSize(input Input) (V, E int, err error) {
	in, closer := input()
	defer closer()
	err = processLines(in, func(line []byte) {
		if bytes.HasPrefix(line, []byte("vertex")) {
			V++
		} else if bytes.HasPrefix(line, []byte("edge")) {
			E++
		}
	})
	if err != nil {
		return 0, 0, err
	}
	return V, E, nil
}
