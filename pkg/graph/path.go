package graph

import (
	"math"

	"sidewalkify/pkg/geo"
)

// Path is one walk produced by the traversal: an ordered edge sequence with
// the nodes it visits (always one more node than edges). Cyclic paths end at
// their starting node and correspond to a traced block face; open paths end
// at a dead end. Paths borrow edge pointers from the graph.
type Path struct {
	Edges  []*Edge
	Nodes  []Node
	Cyclic bool
}

// Candidates whose target is the node we just came from sort last, so the
// traversal only doubles back when nothing else leaves the node.
const doubleBackCost = 1e6

// FindPaths decomposes the graph into paths. Starting from each not-yet
// visited edge in insertion order, it walks forward always taking the first
// outgoing edge met when sweeping clockwise from the reversed incoming
// heading (the sharpest left turn), which traces the boundary of the planar
// face to the left of the incoming edge, the side its sidewalk is drawn on.
// Every edge appears in exactly one of the returned paths.
func FindPaths(g *Graph) []*Path {
	visited := make(map[*Edge]bool, len(g.edges))

	var paths []*Path
	for _, e := range g.edges {
		if !visited[e] {
			paths = append(paths, findPath(g, e, visited))
		}
	}
	return paths
}

func findPath(g *Graph, start *Edge, visited map[*Edge]bool) *Path {
	path := &Path{
		Edges: []*Edge{start},
		Nodes: []Node{start.From, start.To},
	}
	visited[start] = true

	previous := start.From
	current := start.To
	incoming := start

	for {
		succs := g.Out(current)
		if len(succs) == 0 {
			if current == path.Nodes[0] {
				path.Cyclic = true
			}
			break
		}

		next := succs[0]
		best := turnCost(incoming, next, previous)
		for _, cand := range succs[1:] {
			cost := turnCost(incoming, cand, previous)
			// Exact ties (parallel edges, quantized self-loops) prefer an
			// unvisited edge; otherwise adjacency order decides.
			if cost < best || (cost == best && visited[next] && !visited[cand]) {
				best = cost
				next = cand
			}
		}

		if visited[next] {
			if current == path.Nodes[0] {
				path.Cyclic = true
			}
			break
		}

		path.Edges = append(path.Edges, next)
		path.Nodes = append(path.Nodes, next.To)
		visited[next] = true

		previous = current
		current = next.To
		incoming = next
	}

	return path
}

// turnCost measures the clockwise rotation from the reversed incoming
// heading to the candidate's outgoing heading. The minimum over all
// candidates is the sharpest left turn.
func turnCost(incoming, candidate *Edge, previous Node) float64 {
	if candidate.To == previous {
		return doubleBackCost
	}
	return geo.CWDistance(math.Mod(incoming.Az2+180, 360), candidate.Az1)
}
