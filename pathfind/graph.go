// Package pathfind builds a jump graph over the horizontal obstacle segments
// and searches it.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/milk9111/desktopcharacters/common"
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
)

// JumpPlan moves a character from a takeoff point on one surface to a landing
// point on another.
type JumpPlan struct {
	Takeoff geom.Vec2
	Landing geom.Vec2
	Delta   geom.Vec2
}

type Edge struct {
	To   int
	Plan JumpPlan
}

// Node is one walkable horizontal segment.
type Node struct {
	Obstacle int
	Segment  int
	Y        float64
	Range    geom.Range
	Edges    []Edge
}

func (n Node) Center() geom.Vec2 {
	return geom.V((n.Range.Min+n.Range.Max)/2, n.Y)
}

type Graph struct {
	Nodes []Node
}

// Build creates a node for every horizontal segment below ceiling and links
// every pair of nodes with a jump plan.
func Build(obstacles []obstacle.Obstacle, ceiling float64) *Graph {
	g := &Graph{}
	for i, o := range obstacles {
		if o.Type != obstacle.Horizontal || o.PerpOffset >= ceiling {
			continue
		}
		for j, seg := range o.Segments {
			g.Nodes = append(g.Nodes, Node{Obstacle: i, Segment: j, Y: o.PerpOffset, Range: seg})
		}
	}

	for i := range g.Nodes {
		a := &g.Nodes[i]
		for j := range g.Nodes {
			if i == j {
				continue
			}
			b := g.Nodes[j]
			a.Edges = append(a.Edges, Edge{To: j, Plan: ComputeJump(a.Range, a.Y, b.Range, b.Y)})
		}
	}
	return g
}

// ComputeJump lands on the end of b nearest to a and takes off from the
// nearest point of a. Overlapping ranges give a vertical jump.
func ComputeJump(a geom.Range, ay float64, b geom.Range, by float64) JumpPlan {
	var landingX float64
	switch {
	case b.Min > a.Max:
		landingX = b.Min
	case b.Max < a.Min:
		landingX = b.Max
	default:
		landingX = math.Max(a.Min, b.Min)
	}

	takeoffX := landingX
	if landingX < a.Min {
		takeoffX = a.Min
	} else if landingX > a.Max {
		takeoffX = a.Max
	}

	return JumpPlan{
		Takeoff: geom.V(takeoffX, ay),
		Landing: geom.V(landingX, by),
		Delta:   geom.V(landingX-takeoffX, by-ay),
	}
}

// Reachable accepts jumps whose rise fits the apex of a jump with the given
// launch speed under gravity.
func Reachable(maxJumpVelocity, gravity float64) func(JumpPlan) bool {
	g := math.Abs(gravity)
	if g == 0 {
		return func(JumpPlan) bool { return true }
	}
	apex := maxJumpVelocity * maxJumpVelocity / (2 * g)
	return func(p JumpPlan) bool { return p.Delta.Y <= apex }
}

// Launch returns the take-off velocity that carries a box along the plan
// under gravity. The apex is clearance above the higher end, capped by
// maxJumpVelocity. On upward jumps wallGap is the horizontal room in front of
// the landing surface's side: the box only crosses it once its bottom is half
// the clearance above the landing height. ok is false when the landing height
// cannot be reached.
func (p JumpPlan) Launch(maxJumpVelocity, maxSpeed, gravity, clearance, wallGap float64) (geom.Vec2, bool) {
	g := math.Abs(gravity)
	if g == 0 || maxJumpVelocity <= 0 {
		return geom.Vec2{}, false
	}
	vy := math.Min(math.Sqrt(2*g*(max(p.Delta.Y, 0)+clearance)), maxJumpVelocity)
	disc := vy*vy - 2*g*p.Delta.Y
	if disc < 0 {
		return geom.Vec2{}, false
	}
	land := (vy + math.Sqrt(disc)) / g

	vx := math.Abs(p.Delta.X) / land
	if p.Delta.Y > 0 && wallGap >= 0 {
		if c := vy*vy - 2*g*(p.Delta.Y+clearance/2); c >= 0 {
			clear := (vy - math.Sqrt(c)) / g
			if clear > 0 {
				vx = math.Min(vx, wallGap/clear)
			}
		}
	}
	vx = math.Min(vx, maxSpeed) * common.Sign(p.Delta.X)
	return geom.V(vx, vy), true
}

// Edge returns the edge from one node to another.
func (g *Graph) Edge(from, to int) (Edge, bool) {
	if from < 0 || from >= len(g.Nodes) {
		return Edge{}, false
	}
	for _, e := range g.Nodes[from].Edges {
		if e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// Approach moves the plan of the edge from -> to off the landing surface's
// side for a box of the given half width: the takeoff is margin outside the
// landing span and the landing margin inside it. Of the two sides the one
// nearest the original takeoff wins. ok is false when neither side fits on
// the takeoff surface.
func (g *Graph) Approach(from, to int, halfWidth, margin float64) (JumpPlan, bool) {
	e, ok := g.Edge(from, to)
	if !ok {
		return JumpPlan{}, false
	}
	a, b := g.Nodes[from], g.Nodes[to]
	off := halfWidth + margin

	best, found := JumpPlan{}, false
	try := func(takeoffX, landingX float64, clears bool) {
		if !clears {
			return
		}
		landingX = common.Clamp(landingX, b.Range.Min, b.Range.Max)
		if found && math.Abs(takeoffX-e.Plan.Takeoff.X) >= math.Abs(best.Takeoff.X-e.Plan.Takeoff.X) {
			return
		}
		best, found = JumpPlan{
			Takeoff: geom.V(takeoffX, a.Y),
			Landing: geom.V(landingX, b.Y),
			Delta:   geom.V(landingX-takeoffX, b.Y-a.Y),
		}, true
	}
	left := common.Clamp(b.Range.Min-off, a.Range.Min, a.Range.Max)
	try(left, b.Range.Min+off, left+halfWidth <= b.Range.Min)
	right := common.Clamp(b.Range.Max+off, a.Range.Min, a.Range.Max)
	try(right, b.Range.Max-off, right-halfWidth >= b.Range.Max)
	return best, found
}

// NodeBelow returns the highest node under p whose span holds p.X.
func (g *Graph) NodeBelow(p geom.Vec2, tolerance float64) (int, bool) {
	best := -1
	for i, n := range g.Nodes {
		if p.X < n.Range.Min || p.X > n.Range.Max || n.Y > p.Y+tolerance {
			continue
		}
		if best < 0 || n.Y > g.Nodes[best].Y {
			best = i
		}
	}
	return best, best >= 0
}

// NodeAt returns the node a character standing at p is on. Feet must be
// within tolerance of the surface.
func (g *Graph) NodeAt(p geom.Vec2, tolerance float64) (int, bool) {
	best, bestDY := -1, math.Inf(1)
	for i, n := range g.Nodes {
		if p.X < n.Range.Min || p.X > n.Range.Max {
			continue
		}
		dy := math.Abs(p.Y - n.Y)
		if dy <= tolerance && dy < bestDY {
			best, bestDY = i, dy
		}
	}
	return best, best >= 0
}

// Path returns the node indices from start to goal, or nil. Edges rejected by
// allow are skipped; a nil allow accepts every edge.
func (g *Graph) Path(start, goal int, allow func(JumpPlan) bool) []int {
	if start < 0 || goal < 0 || start >= len(g.Nodes) || goal >= len(g.Nodes) {
		return nil
	}
	if start == goal {
		return []int{start}
	}

	cameFrom := make([]int, len(g.Nodes))
	gScore := make([]float64, len(g.Nodes))
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}
	gScore[start] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{node: start, f: g.heuristic(start, goal)})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.node
		if cur == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		if current.g > gScore[cur] {
			continue
		}

		for _, e := range g.Nodes[cur].Edges {
			if allow != nil && !allow(e.Plan) {
				continue
			}
			tentative := gScore[cur] + e.Plan.Delta.Len()
			if tentative < gScore[e.To] {
				cameFrom[e.To] = cur
				gScore[e.To] = tentative
				heap.Push(open, &openItem{node: e.To, g: tentative, f: tentative + g.heuristic(e.To, goal)})
			}
		}
	}
	return nil
}

// heuristic is the height difference, never more than the jump lengths.
func (g *Graph) heuristic(a, b int) float64 {
	return math.Abs(g.Nodes[a].Y - g.Nodes[b].Y)
}

func reconstructPath(cameFrom []int, start, goal int) []int {
	path := []int{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		if cur < 0 {
			return nil
		}
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	node  int
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}
