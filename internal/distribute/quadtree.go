// Package distribute selects a bounded, spatially even subset of corner
// candidates by subdividing the candidate set into a quad-tree and keeping
// the strongest candidate per leaf.
package distribute

import (
	"math"
	"sort"

	"orb-extract/internal/feature"
	"orb-extract/pkg/geometry"
)

// quadNode is one region of the working set: four corner coordinates, the
// candidates whose positions fall inside it, and a flag marking nodes that
// hold exactly one candidate and are never subdivided again. Nodes live in
// a flat slice for the duration of one Retain call; nothing references them
// afterwards.
type quadNode struct {
	ul, ur, bl, br geometry.PointInt
	keys           []feature.KeyPoint
	noMore         bool
}

// divide splits the node into four quadrants along its midpoints (rounded
// up) and reassigns its candidates. A point exactly on a midline goes to
// the top/left quadrant's neighbour: the boundary test is a strict "<"
// against the midline.
func (n *quadNode) divide() [4]quadNode {
	halfX := int(math.Ceil(float64(n.ur.X-n.ul.X) / 2))
	halfY := int(math.Ceil(float64(n.br.Y-n.ul.Y) / 2))

	midTop := geometry.PointInt{X: n.ul.X + halfX, Y: n.ul.Y}
	midLeft := geometry.PointInt{X: n.ul.X, Y: n.ul.Y + halfY}
	center := geometry.PointInt{X: n.ul.X + halfX, Y: n.ul.Y + halfY}
	midRight := geometry.PointInt{X: n.ur.X, Y: n.ul.Y + halfY}
	midBottom := geometry.PointInt{X: n.ul.X + halfX, Y: n.bl.Y}

	children := [4]quadNode{
		{ul: n.ul, ur: midTop, bl: midLeft, br: center},
		{ul: midTop, ur: n.ur, bl: center, br: midRight},
		{ul: midLeft, ur: center, bl: n.bl, br: midBottom},
		{ul: center, ur: midRight, bl: midBottom, br: n.br},
	}

	for _, kp := range n.keys {
		var idx int
		if kp.Pt.X < float64(center.X) {
			if kp.Pt.Y < float64(center.Y) {
				idx = 0
			} else {
				idx = 2
			}
		} else if kp.Pt.Y < float64(center.Y) {
			idx = 1
		} else {
			idx = 3
		}
		children[idx].keys = append(children[idx].keys, kp)
	}

	for i := range children {
		if len(children[i].keys) == 1 {
			children[i].noMore = true
		}
	}
	return children
}

// expandEntry records a splittable node created during one pass, for the
// prioritized finishing pass. seq makes the sort deterministic across runs
// when candidate counts tie.
type expandEntry struct {
	size int
	idx  int
	seq  int
}

// workSet is the flat collection of active nodes. Split nodes are
// tombstoned rather than removed so indices recorded in expand entries stay
// valid; live tracks the non-tombstoned count.
type workSet struct {
	nodes []*quadNode
	live  int
}

func (w *workSet) add(n *quadNode) int {
	w.nodes = append(w.nodes, n)
	w.live++
	return len(w.nodes) - 1
}

func (w *workSet) remove(idx int) {
	w.nodes[idx] = nil
	w.live--
}

// Retain distributes candidates over a quad-tree covering bounds and keeps
// the highest-response candidate of every leaf. Candidate positions are
// relative to the bounds origin. The returned count can fall below, meet,
// or slightly exceed n depending on how subdivision terminated; no
// truncation is applied afterwards.
func Retain(candidates []feature.KeyPoint, bounds geometry.RectInt, n int) []feature.KeyPoint {
	if len(candidates) == 0 {
		return nil
	}

	width := bounds.Width
	height := bounds.Height

	// Enough initial columns to keep the starting nodes roughly square.
	nIni := int(math.Round(float64(width) / float64(height)))
	if nIni < 1 {
		nIni = 1
	}
	hX := float64(width) / float64(nIni)

	w := &workSet{}
	initial := make([]*quadNode, nIni)
	for i := 0; i < nIni; i++ {
		nd := &quadNode{
			ul: geometry.PointInt{X: int(hX * float64(i)), Y: 0},
			ur: geometry.PointInt{X: int(hX * float64(i+1)), Y: 0},
			bl: geometry.PointInt{X: int(hX * float64(i)), Y: height},
			br: geometry.PointInt{X: int(hX * float64(i+1)), Y: height},
		}
		initial[i] = nd
	}
	for _, kp := range candidates {
		initial[int(kp.Pt.X/hX)].keys = append(initial[int(kp.Pt.X/hX)].keys, kp)
	}
	for _, nd := range initial {
		if len(nd.keys) == 0 {
			continue
		}
		if len(nd.keys) == 1 {
			nd.noMore = true
		}
		w.add(nd)
	}

	var expand []expandEntry
	seq := 0
	finish := false

	for !finish {
		prevSize := w.live
		expand = expand[:0]

		// Full pass: split every splittable node into its quadrants,
		// keep the non-empty ones.
		next := &workSet{nodes: make([]*quadNode, 0, len(w.nodes)*2)}
		for _, nd := range w.nodes {
			if nd == nil {
				continue
			}
			if nd.noMore {
				next.add(nd)
				continue
			}
			children := nd.divide()
			for i := range children {
				if len(children[i].keys) == 0 {
					continue
				}
				c := &children[i]
				idx := next.add(c)
				if len(c.keys) > 1 {
					expand = append(expand, expandEntry{size: len(c.keys), idx: idx, seq: seq})
					seq++
				}
			}
		}
		w = next

		if w.live >= n || w.live == prevSize {
			finish = true
		} else if w.live+len(expand)*3 > n {
			// The next full pass would overshoot the target by too much.
			// Switch to splitting one node at a time, most populous
			// first, and stop the instant the target is reached. The
			// mid-pass early exit leaves same-pass siblings unsplit;
			// that order dependence is intentional.
			for !finish {
				prevSize = w.live
				prev := make([]expandEntry, len(expand))
				copy(prev, expand)
				expand = expand[:0]

				sort.Slice(prev, func(a, b int) bool {
					if prev[a].size != prev[b].size {
						return prev[a].size < prev[b].size
					}
					return prev[a].seq < prev[b].seq
				})
				for j := len(prev) - 1; j >= 0; j-- {
					nd := w.nodes[prev[j].idx]
					children := nd.divide()
					w.remove(prev[j].idx)
					for i := range children {
						if len(children[i].keys) == 0 {
							continue
						}
						c := &children[i]
						idx := w.add(c)
						if len(c.keys) > 1 {
							expand = append(expand, expandEntry{size: len(c.keys), idx: idx, seq: seq})
							seq++
						}
					}
					if w.live >= n {
						break
					}
				}

				if w.live >= n || w.live == prevSize {
					finish = true
				}
			}
		}
	}

	// Keep the best candidate of every surviving node; ties go to the
	// first encountered.
	result := make([]feature.KeyPoint, 0, w.live)
	for _, nd := range w.nodes {
		if nd == nil {
			continue
		}
		best := nd.keys[0]
		for _, kp := range nd.keys[1:] {
			if kp.Response > best.Response {
				best = kp
			}
		}
		result = append(result, best)
	}
	return result
}
