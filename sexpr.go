package closet

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSExpr renders the ZDD rooted at node using the arena-free textual
// grammar `node := "(A)" | "(N)" | "(" uint ws node ws node ")"`, where A
// is the always/unit leaf, N the never/empty leaf, and uint the branch's
// Priority. It does not consult a Universe: the output names priorities,
// not items, matching the grammar's own vocabulary.
func FormatSExpr(a *NodeArena, node NodeID) string {
	var b strings.Builder
	writeSExpr(&b, a, node)
	return b.String()
}

func writeSExpr(b *strings.Builder, a *NodeArena, node NodeID) {
	n := a.Resolve(node)
	if n.Leaf {
		if n.Value {
			b.WriteString("(A)")
		} else {
			b.WriteString("(N)")
		}
		return
	}
	b.WriteByte('(')
	b.WriteString(strconv.FormatUint(uint64(n.Priority), 10))
	b.WriteByte(' ')
	writeSExpr(b, a, n.Low)
	b.WriteByte(' ')
	writeSExpr(b, a, n.High)
	b.WriteByte(')')
}

// ParseSExpr parses the textual grammar back into an interned node,
// tolerant of arbitrary whitespace between tokens. Parsing is total over
// every syntactically valid input: ParseSExpr(a, FormatSExpr(a, n)) == n
// for every node n, since every Branch it builds passes through MkZDD.
func ParseSExpr(a *NodeArena, s string) (NodeID, error) {
	p := &sexprParser{arena: a, input: s}
	p.skipSpace()
	node, err := p.parseNode()
	if err != nil {
		return FalseLeaf, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return FalseLeaf, fmt.Errorf("sexpr: unexpected trailing input at offset %d", p.pos)
	}
	return node, nil
}

type sexprParser struct {
	arena *NodeArena
	input string
	pos   int
}

func (p *sexprParser) skipSpace() {
	for p.pos < len(p.input) && isSExprSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isSExprSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *sexprParser) expect(c byte) error {
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return fmt.Errorf("sexpr: expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *sexprParser) parseNode() (NodeID, error) {
	if err := p.expect('('); err != nil {
		return FalseLeaf, err
	}
	p.skipSpace()
	switch {
	case p.pos < len(p.input) && p.input[p.pos] == 'A':
		p.pos++
		p.skipSpace()
		if err := p.expect(')'); err != nil {
			return FalseLeaf, err
		}
		return TrueLeaf, nil
	case p.pos < len(p.input) && p.input[p.pos] == 'N':
		p.pos++
		p.skipSpace()
		if err := p.expect(')'); err != nil {
			return FalseLeaf, err
		}
		return FalseLeaf, nil
	}

	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return FalseLeaf, fmt.Errorf("sexpr: expected uint, A, or N at offset %d", start)
	}
	val, err := strconv.ParseUint(p.input[start:p.pos], 10, 32)
	if err != nil {
		return FalseLeaf, fmt.Errorf("sexpr: invalid priority %q: %w", p.input[start:p.pos], err)
	}

	p.skipSpace()
	low, err := p.parseNode()
	if err != nil {
		return FalseLeaf, err
	}
	p.skipSpace()
	high, err := p.parseNode()
	if err != nil {
		return FalseLeaf, err
	}
	p.skipSpace()
	if err := p.expect(')'); err != nil {
		return FalseLeaf, err
	}
	return MkZDD(p.arena, Priority(val), low, high), nil
}
