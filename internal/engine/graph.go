package engine

import "fmt"

// Node is one element of a synthesized chain or lineage graph.
type Node struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Depth int     `json:"depth"`
	Score float64 `json:"score"`
}

// Edge is a typed directed relation. Hop numbers start at 1 and increase
// strictly along a path.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Type   string  `json:"type"`
	Hop    int     `json:"hop"`
	Weight float64 `json:"weight"`
}

// Graph bundles nodes and edges. Slices are always non-nil so an empty graph
// serializes as [] rather than null.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func emptyGraph() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// ChainSpec configures forward synthesis. Pools come from immutable
// configuration, not package state.
type ChainSpec struct {
	MaxDepth  int
	MaxBranch int
	Types     []string // relationship type pool
	Kinds     []string // successor node kind pool
	// Threshold drops edges whose weight falls below it. Zero means "return
	// everything": the unfiltered graph is a distinct exit path, not a
	// degenerate weight >= 0 filter.
	Threshold float64
}

// Per-hop re-seeding stride. Part of the response contract.
const chainHopStride = 7919

var (
	chainHopCount = Channel("chain.hop_count")
	chainBranch   = Channel("chain.branch")
	chainNodeID   = Channel("chain.node_id")
	chainNodeKind = Channel("chain.node_kind")
	chainNodeRisk = Channel("chain.node_risk")
	chainEdgeType = Channel("chain.edge_type")
	chainEdgeWt   = Channel("chain.edge_weight")
)

// BuildChain expands rootKey into a bounded forward chain. The number of hops
// actually produced is itself seed-derived (1..MaxDepth); each hop re-seeds
// from (rootSeed, hop*stride) so hops draw from separated streams.
func BuildChain(rootKey string, spec ChainSpec) Graph {
	if rootKey == "" || spec.MaxDepth < 1 {
		return emptyGraph()
	}
	branch := spec.MaxBranch
	if branch < 1 {
		branch = 1
	}

	seed := DeriveSeed(rootKey)
	root := NewRand(seed)
	hops := 1 + root.Count(chainHopCount, spec.MaxDepth-1)

	g := emptyGraph()
	g.Nodes = append(g.Nodes, Node{ID: rootKey, Kind: "root", Depth: 0})
	seen := map[string]bool{rootKey: true}
	frontier := []string{rootKey}

	for h := 1; h <= hops; h++ {
		hr := NewRand(seed + int64(h)*chainHopStride)
		width := 1 + hr.Count(chainBranch, branch-1)
		var next []string
		for i := 0; i < width; i++ {
			off := int64(i)
			id := fmt.Sprintf("ent_%06x", uint32(hr.Float(chainNodeID+off)*0xffffff))
			if seen[id] {
				continue
			}
			seen[id] = true
			g.Nodes = append(g.Nodes, Node{
				ID:    id,
				Kind:  hr.Pick(chainNodeKind+off, spec.Kinds),
				Depth: h,
				Score: hr.RangeN(chainNodeRisk+off, 0, 1, 4),
			})
			g.Edges = append(g.Edges, Edge{
				From:   frontier[i%len(frontier)],
				To:     id,
				Type:   hr.Pick(chainEdgeType+off, spec.Types),
				Hop:    h,
				Weight: hr.RangeN(chainEdgeWt+off, 0.05, 1, 4),
			})
			next = append(next, id)
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}

	if spec.Threshold == 0 {
		return g
	}
	return filterChain(g, spec.Threshold)
}

// filterChain drops edges below the threshold, then drops non-root nodes left
// without any incident edge.
func filterChain(g Graph, threshold float64) Graph {
	out := emptyGraph()
	connected := map[string]bool{}
	for _, e := range g.Edges {
		if e.Weight < threshold {
			continue
		}
		out.Edges = append(out.Edges, e)
		connected[e.From] = true
		connected[e.To] = true
	}
	for _, n := range g.Nodes {
		if n.Depth == 0 || connected[n.ID] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	return out
}

// SourceDecl is one declared source of a dataset; Parent optionally names the
// dataset the source itself was materialized from.
type SourceDecl struct {
	ID     string
	Parent string
}

// Declarations is the pre-existing adjacency a lineage traversal walks:
// dataset id -> its declared sources.
type Declarations map[string][]SourceDecl

// TraceLineage walks the declared-source graph backward from rootID,
// collecting every source reachable within maxDepth hops and the edge
// connecting each source to the dataset that declared it. An explicit
// worklist plus a visited set keyed by dataset id bounds stack depth and
// makes cycle safety testable; a node is never added twice even when
// reachable via two paths. An unknown root yields an empty graph: "not
// found" is the caller's concern.
func TraceLineage(rootID string, maxDepth int, decls Declarations) Graph {
	if _, ok := decls[rootID]; !ok {
		return emptyGraph()
	}

	g := emptyGraph()
	g.Nodes = append(g.Nodes, Node{ID: rootID, Kind: "dataset", Depth: 0})
	added := map[string]bool{rootID: true}
	visited := map[string]bool{}

	type item struct {
		id    string
		depth int
	}
	work := []item{{id: rootID, depth: 0}}

	for len(work) > 0 {
		cur := work[0]
		work = work[1:]
		if visited[cur.id] || cur.depth >= maxDepth {
			continue
		}
		visited[cur.id] = true

		for _, src := range decls[cur.id] {
			if !added[src.ID] {
				added[src.ID] = true
				g.Nodes = append(g.Nodes, Node{ID: src.ID, Kind: "source", Depth: cur.depth + 1})
			}
			g.Edges = append(g.Edges, Edge{
				From: src.ID,
				To:   cur.id,
				Type: "feeds",
				Hop:  cur.depth + 1,
			})
			if src.Parent == "" {
				continue
			}
			if _, known := decls[src.Parent]; !known {
				continue
			}
			if !added[src.Parent] {
				added[src.Parent] = true
				g.Nodes = append(g.Nodes, Node{ID: src.Parent, Kind: "dataset", Depth: cur.depth + 1})
			}
			work = append(work, item{id: src.Parent, depth: cur.depth + 1})
		}
	}
	return g
}
