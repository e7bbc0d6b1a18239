package loader

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/zeusync/behave/internal/core/bt"
)

// Text is the indentation notation: one node type per line, children
// indented deeper than their parent. Indentation may use spaces or tabs but
// not both in one file. Everything after '#' is a comment.
//
//	Sequence
//	  Selector
//	    TestTurnInput
//	    Noop
type Text struct{}

func (Text) Name() string         { return "text" }
func (Text) Extensions() []string { return []string{".bt", ".txt"} }

var utf8BOM = []byte("\ufeff")

type textFrame struct {
	indent      int
	childIndent int // -1 until the first child is seen
	node        *bt.Descriptor
}

func (Text) Parse(src []byte) (*bt.Descriptor, error) {
	var (
		root     *bt.Descriptor
		stack    []*textFrame
		indentCh byte
		lineNo   int
	)
	src = bytes.TrimPrefix(src, utf8BOM)
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		body := strings.TrimLeft(line, " \t")
		lead := line[:len(line)-len(body)]
		for i := 0; i < len(lead); i++ {
			if indentCh == 0 {
				indentCh = lead[i]
			}
			if lead[i] != indentCh {
				return nil, malformed("line %d: mixed tabs and spaces in indentation", lineNo)
			}
		}
		if strings.ContainsAny(body, " \t") {
			return nil, malformed("line %d: expected a single node type, got %q", lineNo, body)
		}

		indent := len(lead)
		node := &bt.Descriptor{Type: body}

		if root == nil {
			if indent != 0 {
				return nil, malformed("line %d: root node must not be indented", lineNo)
			}
			root = node
			stack = append(stack, &textFrame{indent: 0, childIndent: -1, node: node})
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, malformed("line %d: more than one root node (%q)", lineNo, body)
		}
		parent := stack[len(stack)-1]
		if parent.childIndent == -1 {
			parent.childIndent = indent
		} else if parent.childIndent != indent {
			return nil, malformed("line %d: inconsistent indentation under %q", lineNo, parent.node.Type)
		}
		parent.node.Children = append(parent.node.Children, node)
		stack = append(stack, &textFrame{indent: indent, childIndent: -1, node: node})
	}
	if err := sc.Err(); err != nil {
		return nil, malformed("%v", err)
	}
	if root == nil {
		return nil, malformed("empty tree")
	}
	return root, nil
}

// Marshal renders desc in the text notation using two-space indentation.
func (Text) Marshal(desc *bt.Descriptor) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return []byte(desc.String()), nil
}
