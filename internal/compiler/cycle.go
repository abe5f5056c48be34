package compiler

import (
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"
)

// ReferenceCycle is a set of named class expressions that refer to each
// other through {ref: name}. A cyclic definition has no finite expansion,
// so the compiler rejects it.
type ReferenceCycle struct {
	Path    []string `json:"path"`    // e.g. ["A", "B", "A"]
	Message string   `json:"message"` // Human-readable description
}

// AnalyzeReferences finds reference cycles among named expressions.
//
// The algorithm:
//  1. Build a name → referenced names graph by walking each expression
//  2. Use Tarjan's algorithm to find strongly connected components
//  3. Report each SCC with size > 1, and each self-reference, as a cycle
//
// Nodes are visited in sorted order so the result is deterministic.
func AnalyzeReferences(named map[string]cue.Value) []ReferenceCycle {
	if len(named) == 0 {
		return nil
	}

	graph := buildReferenceGraph(named)
	sccs := tarjanSCC(graph)

	var cycles []ReferenceCycle
	for _, scc := range sccs {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			cycles = append(cycles, sccToCycle(scc, graph))
		}
	}
	return cycles
}

// referenceGraph maps an expression name to the names it references.
type referenceGraph map[string][]string

func buildReferenceGraph(named map[string]cue.Value) referenceGraph {
	graph := make(referenceGraph, len(named))
	for name, v := range named {
		var refs []string
		collectRefs(v, &refs)
		// Only edges to defined names matter; undefined refs are reported
		// by the compiler with a position.
		edges := []string{}
		for _, r := range refs {
			if _, ok := named[r]; ok && !slices.Contains(edges, r) {
				edges = append(edges, r)
			}
		}
		slices.Sort(edges)
		graph[name] = edges
	}
	return graph
}

// collectRefs appends every {ref: "name"} target found under v.
func collectRefs(v cue.Value, out *[]string) {
	switch v.Kind() {
	case cue.StructKind:
		if rv := v.LookupPath(cue.ParsePath("ref")); rv.Exists() {
			if s, err := rv.String(); err == nil {
				*out = append(*out, s)
			}
		}
		iter, err := v.Fields()
		if err != nil {
			return
		}
		for iter.Next() {
			collectRefs(iter.Value(), out)
		}
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return
		}
		for iter.Next() {
			collectRefs(iter.Value(), out)
		}
	}
}

func hasSelfLoop(node string, graph referenceGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
func tarjanSCC(graph referenceGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			slices.Sort(scc)
			sccs = append(sccs, scc)
		}
	}

	nodes := make([]string, 0, len(graph))
	for node := range graph {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)

	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

func sccToCycle(scc []string, graph referenceGraph) ReferenceCycle {
	if len(scc) == 1 {
		name := scc[0]
		return ReferenceCycle{
			Path:    []string{name, name},
			Message: fmt.Sprintf("expression %q refers to itself", name),
		}
	}

	path := reconstructCyclePath(scc, graph)
	return ReferenceCycle{
		Path:    path,
		Message: fmt.Sprintf("reference cycle: %s", strings.Join(path, " → ")),
	}
}

// reconstructCyclePath follows edges inside the SCC from its first member
// until it returns to the start.
func reconstructCyclePath(scc []string, graph referenceGraph) []string {
	members := make(map[string]bool, len(scc))
	for _, node := range scc {
		members[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if members[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
