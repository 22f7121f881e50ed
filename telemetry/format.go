package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/saft/output"
)

// slowOperation is the duration from which a timing is highlighted.
const slowOperation = 100 * time.Millisecond

// group is a set of sibling timers sharing a name.
type group struct {
	name     string
	count    int
	duration time.Duration
	children []*timerNode
}

func (g *group) label() string {
	if g.count == 1 {
		return g.name
	}
	return fmt.Sprintf("%s ×%d", g.name, g.count)
}

// groupNodes merges sibling timers by name, keeping the order in which each name
// first appeared. Children of merged timers are merged as well.
func groupNodes(nodes []*timerNode) []*group {
	var groups []*group
	byName := make(map[string]*group, len(nodes))

	for _, n := range nodes {
		g, ok := byName[n.name]
		if !ok {
			g = &group{name: n.name}
			byName[n.name] = g
			groups = append(groups, g)
		}
		g.count++
		g.duration += n.duration()
		g.children = append(g.children, n.children...)
	}

	return groups
}

// formatTimingTree prints root and its descendants with box-drawing guides:
//
//	check payments.yaml: 125ms
//	├─ load payments.yaml: 85ms
//	└─ audit.process (2000 payments): 40ms
//	   ├─ audit.document ×2000: 38ms
//	   └─ audit.table: 0ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	timing := formatDuration(root.duration())
	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, timing)
	}

	groups := groupNodes(root.children)
	for i, g := range groups {
		formatGroup(w, g, "", i == len(groups)-1, styles)
	}
}

// formatGroup prints g on one line, then its children one level deeper.
func formatGroup(w io.Writer, g *group, prefix string, isLast bool, styles *output.Styles) {
	var branch, extension string
	if isLast {
		branch = "└─ "
		extension = "   "
	} else {
		branch = "├─ "
		extension = "│  "
	}

	timing := formatDuration(g.duration)
	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), g.label(), styles.Timing(timing, g.duration >= slowOperation))
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, g.label(), timing)
	}

	children := groupNodes(g.children)
	for i, child := range children {
		formatGroup(w, child, prefix+extension, i == len(children)-1, styles)
	}
}

// formatDuration renders whole milliseconds below one second and seconds with
// two decimals above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
