package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// KiCad board files are s-expressions. The lexer and parser here cover
// exactly the subset those files use: parenthesized lists, bare atoms,
// and double-quoted strings with backslash escapes. Quotes are stripped
// during lexing so the rest of the package never sees them, which also
// papers over the v5/v6 difference of quoted versus bare layer names.

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenOpen
	tokenClose
	tokenAtom
)

type token struct {
	kind tokenKind
	text string
}

type sexpLexer struct {
	r *bufio.Reader
}

func (l *sexpLexer) next() (token, error) {
	for {
		ch, _, err := l.r.ReadRune()
		if err == io.EOF {
			return token{kind: tokenEOF}, nil
		}
		if err != nil {
			return token{}, err
		}

		switch {
		case unicode.IsSpace(ch):
			continue
		case ch == '(':
			return token{kind: tokenOpen}, nil
		case ch == ')':
			return token{kind: tokenClose}, nil
		case ch == '"':
			return l.quoted()
		default:
			if err := l.r.UnreadRune(); err != nil {
				return token{}, err
			}
			return l.bare()
		}
	}
}

// quoted reads up to the closing double quote. KiCad escapes quotes,
// backslashes and newlines with a backslash.
func (l *sexpLexer) quoted() (token, error) {
	var b strings.Builder
	for {
		ch, _, err := l.r.ReadRune()
		if err == io.EOF {
			return token{}, errors.New("unterminated string")
		}
		if err != nil {
			return token{}, err
		}
		if ch == '"' {
			return token{kind: tokenAtom, text: b.String()}, nil
		}
		if ch == '\\' {
			esc, _, err := l.r.ReadRune()
			if err != nil {
				return token{}, errors.New("unterminated escape")
			}
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(ch)
	}
}

func (l *sexpLexer) bare() (token, error) {
	var b strings.Builder
	for {
		ch, _, err := l.r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			if err := l.r.UnreadRune(); err != nil {
				return token{}, err
			}
			break
		}
		b.WriteRune(ch)
	}
	return token{kind: tokenAtom, text: b.String()}, nil
}

// sexpNode is one parsed expression: either an atom carrying its text,
// or a list carrying its elements in file order.
type sexpNode struct {
	atom string
	list []*sexpNode
	leaf bool
}

// parseSexp reads every top-level expression from r. A board file holds
// exactly one, the (kicad_pcb ...) root, but the parser does not assume
// that.
func parseSexp(r io.Reader) ([]*sexpNode, error) {
	lx := &sexpLexer{r: bufio.NewReader(r)}
	var nodes []*sexpNode
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			return nodes, nil
		case tokenOpen:
			n, err := parseList(lx)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case tokenAtom:
			nodes = append(nodes, &sexpNode{atom: tok.text, leaf: true})
		case tokenClose:
			return nil, errors.New("unbalanced ')'")
		}
	}
}

func parseList(lx *sexpLexer) (*sexpNode, error) {
	n := &sexpNode{}
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenClose:
			return n, nil
		case tokenOpen:
			child, err := parseList(lx)
			if err != nil {
				return nil, err
			}
			n.list = append(n.list, child)
		case tokenAtom:
			n.list = append(n.list, &sexpNode{atom: tok.text, leaf: true})
		case tokenEOF:
			return nil, errors.New("unexpected end of file inside a list")
		}
	}
}

// key returns the atom that names a list, or the atom itself for a
// leaf. Anonymous lists return "".
func (n *sexpNode) key() string {
	if n.leaf {
		return n.atom
	}
	if len(n.list) > 0 && n.list[0].leaf {
		return n.list[0].atom
	}
	return ""
}

// child returns the first sub-list named key, or nil.
func (n *sexpNode) child(key string) *sexpNode {
	if n.leaf {
		return nil
	}
	for _, c := range n.list {
		if !c.leaf && c.key() == key {
			return c
		}
	}
	return nil
}

// children returns every sub-list named key, in file order.
func (n *sexpNode) children(key string) []*sexpNode {
	if n.leaf {
		return nil
	}
	var out []*sexpNode
	for _, c := range n.list {
		if !c.leaf && c.key() == key {
			out = append(out, c)
		}
	}
	return out
}

// str returns the text of the i-th element; index 0 is the key.
func (n *sexpNode) str(i int) string {
	if n.leaf || i < 0 || i >= len(n.list) || !n.list[i].leaf {
		return ""
	}
	return n.list[i].atom
}

// float parses the i-th element as a number.
func (n *sexpNode) float(i int) (float64, error) {
	s := n.str(i)
	if s == "" {
		return 0, fmt.Errorf("missing numeric field %d in (%s ...)", i, n.key())
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q in (%s ...)", s, n.key())
	}
	return v, nil
}

// floatOr parses the i-th element, falling back when absent or
// malformed. Used for optional trailing fields like rotation angles.
func (n *sexpNode) floatOr(i int, def float64) float64 {
	v, err := n.float(i)
	if err != nil {
		return def
	}
	return v
}

// atoms returns the text of every leaf element after the key, as in
// (layers "F.Cu" "F.Mask") -> [F.Cu F.Mask].
func (n *sexpNode) atoms() []string {
	if n.leaf {
		return nil
	}
	var out []string
	for i, c := range n.list {
		if i == 0 {
			continue
		}
		if c.leaf {
			out = append(out, c.atom)
		}
	}
	return out
}
