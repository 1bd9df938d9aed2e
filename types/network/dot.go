package network

import (
	"io/ioutil"
	"math"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

var dotLiterals = []string{"[", "]", "{", "}", "=", ",", ";", ":", "->", "--"}
var dotKeywords = []string{"node", "edge", "graph", "digraph", "subgraph", "strict"}

const (
	dotID = iota
	dotComment
	dotFirstLiteral
)

var dotTokens map[string]int
var dotLexer *lexmachine.Lexer

func init() {
	dotTokens = make(map[string]int)
	for i, name := range append(dotLiterals, dotKeywords...) {
		dotTokens[name] = dotFirstLiteral + i
	}
	var err error
	dotLexer, err = newDotLexer()
	if err != nil {
		panic(err)
	}
}

func newDotLexer() (*lexmachine.Lexer, error) {
	token := func(typ int) lexmachine.Action {
		return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(typ, string(m.Bytes), m), nil
		}
	}
	skip := func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
		return nil, nil
	}
	lexer := lexmachine.NewLexer()
	for _, lit := range dotLiterals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(r), token(dotTokens[lit]))
	}
	for _, kw := range dotKeywords {
		lexer.Add([]byte(kw), token(dotTokens[kw]))
	}
	lexer.Add([]byte(`//[^\n]*\n?`), token(dotComment))
	lexer.Add([]byte(`#[^\n]*\n?`), token(dotComment))
	lexer.Add([]byte(`/\*([^*]|\r|\n|(\*+([^*/]|\r|\n)))*\*+/`), token(dotComment))
	lexer.Add([]byte(`([a-z]|[A-Z]|[0-9]|_)+`), token(dotID))
	lexer.Add([]byte(`\-?[0-9]*\.[0-9]+`), token(dotID))
	lexer.Add([]byte(`\-[0-9]+`), token(dotID))
	lexer.Add([]byte(`"([^\\"]|(\\.))*"`), token(dotID))
	lexer.Add([]byte("( |\t|\n|\r)+"), skip)
	if err := lexer.Compile(); err != nil {
		return nil, err
	}
	return lexer, nil
}

// DotLoader reads the directed graphs written by Dot (and most hand written
// graphviz files). Node labels come from the label attribute or the node id.
// The weight of an edge is its weight attribute, otherwise its arrowhead as
// written by Arrowhead, otherwise 1. Attribute and subgraph statements are
// read but only their nodes and edges are kept.
type DotLoader struct{}

func (l DotLoader) Load(input Input) (*Network, error) {
	in, closer := input()
	defer closer()
	text, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, err
	}
	tokens, err := dotScan(text)
	if err != nil {
		return nil, err
	}
	p := &dotParser{
		tokens: tokens,
		net:    New(16, 16),
		nodes:  make(map[string]int),
	}
	if err := p.graph(); err != nil {
		return nil, err
	}
	errors.Logf("DEBUG", "Loaded dot network %v %v", p.net.Order(), p.net.Size())
	return p.net, nil
}

func dotScan(text []byte) ([]*lexmachine.Token, error) {
	scanner, err := dotLexer.Scanner(text)
	if err != nil {
		return nil, err
	}
	tokens := make([]*lexmachine.Token, 0, len(text)/4)
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if ui, is := err.(*machines.UnconsumedInput); is {
			return nil, errors.Errorf("unexpected input at line %v column %v", ui.FailLine, ui.FailColumn)
		} else if err != nil {
			return nil, err
		}
		token := tok.(*lexmachine.Token)
		if token.Type != dotComment {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

type dotParser struct {
	tokens []*lexmachine.Token
	pos    int
	net    *Network
	nodes  map[string]int
}

func (p *dotParser) peek(name string) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Type == dotTokens[name]
}

func (p *dotParser) peekID() bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Type == dotID
}

func (p *dotParser) expect(name string) error {
	if !p.peek(name) {
		return p.unexpected(name)
	}
	p.pos++
	return nil
}

func (p *dotParser) unexpected(wanted string) error {
	if p.pos >= len(p.tokens) {
		return errors.Errorf("unexpected end of dot input, wanted %v", wanted)
	}
	tok := p.tokens[p.pos]
	return errors.Errorf("unexpected %q at line %v column %v, wanted %v", tok.Lexeme, tok.StartLine, tok.StartColumn, wanted)
}

func (p *dotParser) id() (string, error) {
	if !p.peekID() {
		return "", p.unexpected("an id")
	}
	tok := p.tokens[p.pos]
	p.pos++
	s := tok.Value.(string)
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(s)
	}
	return s, nil
}

func (p *dotParser) graph() error {
	if p.peek("strict") {
		p.pos++
	}
	if p.peek("graph") {
		return p.unexpected("digraph")
	} else if err := p.expect("digraph"); err != nil {
		return err
	}
	if p.peekID() {
		p.pos++
	}
	if err := p.block(); err != nil {
		return err
	}
	if p.pos < len(p.tokens) {
		return p.unexpected("the end of the input")
	}
	return nil
}

func (p *dotParser) block() error {
	if err := p.expect("{"); err != nil {
		return err
	}
	for !p.peek("}") {
		if err := p.stmt(); err != nil {
			return err
		}
		if p.peek(";") {
			p.pos++
		}
	}
	p.pos++
	return nil
}

func (p *dotParser) stmt() error {
	switch {
	case p.peek("graph"), p.peek("node"), p.peek("edge"):
		p.pos++
		_, err := p.attrs()
		return err
	case p.peek("subgraph"):
		p.pos++
		if p.peekID() {
			p.pos++
		}
		return p.block()
	case p.peek("{"):
		return p.block()
	}
	name, err := p.id()
	if err != nil {
		return err
	}
	if p.peek("=") {
		p.pos++
		_, err := p.id()
		return err
	}
	if p.peek(":") {
		return p.unexpected("a node or edge statement (ports are not supported)")
	}
	if !p.peek("->") {
		attrs, err := p.attrs()
		if err != nil {
			return err
		}
		p.node(name, attrs)
		return nil
	}
	chain := []string{name}
	for p.peek("->") {
		p.pos++
		targ, err := p.id()
		if err != nil {
			return err
		}
		chain = append(chain, targ)
	}
	attrs, err := p.attrs()
	if err != nil {
		return err
	}
	w, err := dotWeight(attrs)
	if err != nil {
		return err
	}
	for i := 0; i+1 < len(chain); i++ {
		src := p.node(chain[i], nil)
		targ := p.node(chain[i+1], nil)
		if err := p.net.AddEdge(src, targ, w); err != nil {
			return err
		}
	}
	return nil
}

func (p *dotParser) attrs() (map[string]string, error) {
	attrs := make(map[string]string)
	for p.peek("[") {
		p.pos++
		for !p.peek("]") {
			name, err := p.id()
			if err != nil {
				return nil, err
			}
			if err := p.expect("="); err != nil {
				return nil, err
			}
			value, err := p.id()
			if err != nil {
				return nil, err
			}
			attrs[name] = value
			if p.peek(",") || p.peek(";") {
				p.pos++
			}
		}
		p.pos++
	}
	return attrs, nil
}

func (p *dotParser) node(name string, attrs map[string]string) int {
	idx, has := p.nodes[name]
	if !has {
		idx = p.net.AddNode(name)
		p.nodes[name] = idx
	}
	if label, has := attrs["label"]; has {
		p.net.V[idx].Label = label
	}
	return idx
}

var arrowheadWeights = map[string]Weight{
	"onormal": 1,
	"circle":  2,
	"diamond": 3,
}

func dotWeight(attrs map[string]string) (Weight, error) {
	if s, has := attrs["weight"]; has {
		w, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		} else if w < 1 || w > math.MaxUint8 {
			return 0, errors.Errorf("edge weight %v out of range", w)
		}
		return Weight(w), nil
	}
	if w, has := arrowheadWeights[attrs["arrowhead"]]; has {
		return w, nil
	}
	return 1, nil
}
