package document

import (
	"strings"
)

// 画布尺寸：A4 @ 96 DPI，渲染与导出都以此为准。
const (
	CanonicalWidth  = 794
	CanonicalHeight = 1123

	// RootID 是页面根节点在 HTML 中的 id，导出时按它定位截图区域。
	RootID = "resume-root"
)

// Kind 决定节点序列化成哪种 HTML 元素。
type Kind string

const (
	KindBox     Kind = "box"     // <div>
	KindText    Kind = "text"    // <span>
	KindPara    Kind = "para"    // <p>
	KindHeading Kind = "heading" // <h1>..<h4>, Level 决定层级
	KindImage   Kind = "image"   // <img>, Src 为 data URI 或 https URL
	KindLink    Kind = "link"    // <a>, Src 为 href
	KindList    Kind = "list"    // <ul>
	KindItem    Kind = "item"    // <li>
)

// Node 是文档树中的一个可视节点。
// Role 是语义标签（例如 "name"、"section:skills"），只用于定位和测试，不影响外观。
type Node struct {
	Kind     Kind              `json:"kind"`
	Role     string            `json:"role,omitempty"`
	Text     string            `json:"text,omitempty"`
	Src      string            `json:"src,omitempty"`
	Level    int               `json:"level,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Document is a rendered resume at canonical size. It carries no scale.
type Document struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FontFamily string `json:"fontFamily"`
	TemplateID string `json:"templateId"`
	Root       *Node  `json:"root"`
}

// Box builds a <div> node.
func Box(role string, style map[string]string, children ...*Node) *Node {
	return &Node{Kind: KindBox, Role: role, Style: style, Children: compact(children)}
}

// Text builds a <span> node.
func Text(role, text string, style map[string]string) *Node {
	return &Node{Kind: KindText, Role: role, Text: text, Style: style}
}

func Para(role, text string, style map[string]string, children ...*Node) *Node {
	return &Node{Kind: KindPara, Role: role, Text: text, Style: style, Children: compact(children)}
}

func Heading(level int, role, text string, style map[string]string) *Node {
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	return &Node{Kind: KindHeading, Role: role, Level: level, Text: text, Style: style}
}

func Image(role, src string, style map[string]string) *Node {
	return &Node{Kind: KindImage, Role: role, Src: src, Style: style}
}

func Link(role, href, text string, style map[string]string) *Node {
	return &Node{Kind: KindLink, Role: role, Src: href, Text: text, Style: style}
}

func List(role string, style map[string]string, items ...*Node) *Node {
	return &Node{Kind: KindList, Role: role, Style: style, Children: compact(items)}
}

func Item(role string, style map[string]string, children ...*Node) *Node {
	return &Node{Kind: KindItem, Role: role, Style: style, Children: compact(children)}
}

// compact 去掉 nil 子节点，方便渲染器用 "条件为假返回 nil" 的写法。
func compact(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Append adds non-nil children.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, compact(children)...)
	return n
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Style != nil {
		c.Style = make(map[string]string, len(n.Style))
		for k, v := range n.Style {
			c.Style[k] = v
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Walk visits the subtree depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node with the given role, or nil.
func (n *Node) Find(role string) *Node {
	var found *Node
	n.Walk(func(x *Node) bool {
		if found != nil {
			return false
		}
		if x.Role == role {
			found = x
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node with the given role, in document order.
func (n *Node) FindAll(role string) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.Role == role {
			out = append(out, x)
		}
		return true
	})
	return out
}

// PlainText concatenates the text of the subtree, one node per line.
func (n *Node) PlainText() string {
	var b strings.Builder
	n.Walk(func(x *Node) bool {
		if x.Text != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(x.Text)
		}
		return true
	})
	return b.String()
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Root = d.Root.Clone()
	return &c
}

// Find searches the whole document for a role.
func (d *Document) Find(role string) *Node {
	if d == nil {
		return nil
	}
	return d.Root.Find(role)
}

func (d *Document) FindAll(role string) []*Node {
	if d == nil {
		return nil
	}
	return d.Root.FindAll(role)
}
