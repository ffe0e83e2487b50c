// Package figma models the node tree of a Figma file and fetches files from the Figma REST API.
// See https://www.figma.com/developers/api#files.
package figma

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// NodeType is the type of a node, as per https://www.figma.com/developers/api#node-types.
type NodeType string

const (
	NodeDocument         NodeType = "DOCUMENT"
	NodeCanvas           NodeType = "CANVAS"
	NodeFrame            NodeType = "FRAME"
	NodeGroup            NodeType = "GROUP"
	NodeSection          NodeType = "SECTION"
	NodeVector           NodeType = "VECTOR"
	NodeBooleanOperation NodeType = "BOOLEAN_OPERATION"
	NodeStar             NodeType = "STAR"
	NodeLine             NodeType = "LINE"
	NodeEllipse          NodeType = "ELLIPSE"
	NodeRegularPolygon   NodeType = "REGULAR_POLYGON"
	NodeRectangle        NodeType = "RECTANGLE"
	NodeTable            NodeType = "TABLE"
	NodeTableCell        NodeType = "TABLE_CELL"
	NodeText             NodeType = "TEXT"
	NodeSlice            NodeType = "SLICE"
	NodeComponent        NodeType = "COMPONENT"
	NodeComponentSet     NodeType = "COMPONENT_SET"
	NodeInstance         NodeType = "INSTANCE"
	NodeSticky           NodeType = "STICKY"
	NodeShapeWithText    NodeType = "SHAPE_WITH_TEXT"
	NodeConnector        NodeType = "CONNECTOR"
	NodeWashiTape        NodeType = "WASHI_TAPE"
)

var nodeTypes = map[NodeType]bool{
	NodeDocument: true, NodeCanvas: true, NodeFrame: true, NodeGroup: true,
	NodeSection: true, NodeVector: true, NodeBooleanOperation: true, NodeStar: true,
	NodeLine: true, NodeEllipse: true, NodeRegularPolygon: true, NodeRectangle: true,
	NodeTable: true, NodeTableCell: true, NodeText: true, NodeSlice: true,
	NodeComponent: true, NodeComponentSet: true, NodeInstance: true, NodeSticky: true,
	NodeShapeWithText: true, NodeConnector: true, NodeWashiTape: true,
}

// Valid reports whether t is a node type known to the Figma API.
func (t NodeType) Valid() bool {
	return nodeTypes[t]
}

// Rect is an absolute bounding box on the canvas.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Hyperlink is a link attached to text.
type Hyperlink struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// TypeStyle holds the parts of a text style the pipeline reads.
type TypeStyle struct {
	Hyperlink *Hyperlink `json:"hyperlink,omitempty"`
}

// Node holds the properties shared by every node, plus the few
// type-specific ones the frame pipeline needs. Other fields are ignored.
type Node struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                NodeType  `json:"type"`
	Visible             *bool     `json:"visible,omitempty"`
	Rotation            float64   `json:"rotation,omitempty"`
	Characters          string    `json:"characters,omitempty"`
	AbsoluteBoundingBox *Rect     `json:"absoluteBoundingBox,omitempty"`
	Style               TypeStyle `json:"style"`
	Children            []*Node   `json:"children,omitempty"`
}

// UnmarshalJSON decodes a node, rejecting node types the API does not define.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Type != "" && !decoded.Type.Valid() {
		return fmt.Errorf("node %s: unknown node type %q", decoded.ID, decoded.Type)
	}
	*n = Node(decoded)
	return nil
}

// IsVisible reports whether the node is shown on the canvas. The API omits
// the property for visible nodes.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// HyperlinkURL returns the URL linked from this node's text style, if any.
func (n *Node) HyperlinkURL() string {
	if n.Style.Hyperlink == nil {
		return ""
	}
	return n.Style.Hyperlink.URL
}

// SortNodes returns nodes ordered top-to-bottom, then left-to-right, using
// their absolute bounding boxes. Nodes without a box sort as if at (0, 0).
// The input slice is not modified.
func SortNodes(nodes []*Node) []*Node {
	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		xi, yi := sorted[i].position()
		xj, yj := sorted[j].position()
		if yi != yj {
			return yi < yj
		}
		return xi < xj
	})
	return sorted
}

func (n *Node) position() (x, y float64) {
	if n.AbsoluteBoundingBox == nil {
		return 0, 0
	}
	return n.AbsoluteBoundingBox.X, n.AbsoluteBoundingBox.Y
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

// compilePattern compiles and caches a name pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid node name pattern %q: %w", pattern, err)
	}
	patternCache[pattern] = re
	return re, nil
}

// AnyName matches every node with a non-empty name.
const AnyName = ".+"

// SelectNodes returns descendants of type t whose names contain a match for
// pattern, in canvas order. Invisible nodes and their subtrees are skipped.
// When recursive is false only immediate children are considered.
func (n *Node) SelectNodes(t NodeType, pattern string, recursive bool) ([]*Node, error) {
	if pattern == "" {
		pattern = AnyName
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var out []*Node
	n.selectInto(&out, t, re, recursive)
	return out, nil
}

func (n *Node) selectInto(out *[]*Node, t NodeType, re *regexp.Regexp, recursive bool) {
	if !n.IsVisible() || len(n.Children) == 0 {
		return
	}
	for _, child := range SortNodes(n.Children) {
		if !child.IsVisible() {
			continue
		}
		if child.Type == t && re.MatchString(child.Name) {
			*out = append(*out, child)
		}
		if recursive {
			child.selectInto(out, t, re, recursive)
		}
	}
}

// SelectInnermostNodes searches the whole subtree like SelectNodes but drops
// any match that has another match below it, so a wrapper group named like
// the cards it holds is not returned alongside them.
func (n *Node) SelectInnermostNodes(t NodeType, pattern string) ([]*Node, error) {
	if pattern == "" {
		pattern = AnyName
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var out []*Node
	n.selectInnermost(&out, t, re)
	return out, nil
}

// selectInnermost reports whether anything below n matched.
func (n *Node) selectInnermost(out *[]*Node, t NodeType, re *regexp.Regexp) bool {
	if !n.IsVisible() {
		return false
	}
	found := false
	for _, child := range SortNodes(n.Children) {
		if !child.IsVisible() {
			continue
		}
		if child.selectInnermost(out, t, re) {
			found = true
			continue
		}
		if child.Type == t && re.MatchString(child.Name) {
			*out = append(*out, child)
			found = true
		}
	}
	return found
}

// SelectNode returns the first descendant of type t whose name matches
// pattern, searching recursively, or nil when there is none.
func (n *Node) SelectNode(t NodeType, pattern string) (*Node, error) {
	nodes, err := n.SelectNodes(t, pattern, true)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

// Walk renders the visible tree below n as one line per node, indented
// with dashes. A negative depth means no limit.
func (n *Node) Walk(depth int) []string {
	var lines []string
	n.walk(0, depth, &lines)
	return lines
}

func (n *Node) walk(level, depth int, lines *[]string) {
	if !n.IsVisible() {
		return
	}
	if depth >= 0 && level > depth {
		return
	}
	*lines = append(*lines, fmt.Sprintf("|%s %s (%s)", strings.Repeat("-", level), n.Type, n.Name))
	for _, child := range SortNodes(n.Children) {
		child.walk(level+1, depth, lines)
	}
}

// String returns the full tree below n.
func (n *Node) String() string {
	return strings.Join(n.Walk(-1), "\n")
}
