package tile

import "sort"

// Decomposer incrementally builds a minimal, pairwise non-overlapping set
// of tile-snapped rectangles whose union equals the tile-snapped union of
// whatever rects were last passed to SetBoxes (spec §4.7). Scratch slices
// are reused across frames to avoid per-frame allocation growth.
type Decomposer struct {
	result    []Rect
	bboxes    []Rect
	intervals []xInterval
	ys        []uint32
}

type xInterval struct {
	minX, maxX uint32
}

// NewDecomposer returns an empty Decomposer ready for SetBoxes.
func NewDecomposer() *Decomposer {
	return &Decomposer{}
}

// Result returns the minimal non-overlapping bbox set computed by the most
// recent SetBoxes call.
func (d *Decomposer) Result() []Rect {
	return d.result
}

// Intersections returns, for every bbox in Result overlapping probe on the
// X axis (the original's narrower "intersects" test — a horizontal-strip
// overlap, not a full 2D intersection test), that bbox's intersection with
// probe.
func (d *Decomposer) Intersections(probe Rect) []Rect {
	var out []Rect
	for _, bbox := range d.result {
		if bbox.Intersects(probe) {
			out = append(out, bbox.Intersection(probe))
		}
	}
	return out
}

// SetBoxes recomputes Result from boxes: snap each to tile boundaries,
// collect the distinct y coordinates, then for each horizontal strip
// between consecutive ys merge the x-intervals of rects touching the
// strip, extending the previous emitted rect vertically when its
// (minX,maxX) match and it ends exactly at this strip's start.
func (d *Decomposer) SetBoxes(boxes []Rect) {
	d.result = d.result[:0]
	d.bboxes = d.bboxes[:0]
	for _, b := range boxes {
		d.bboxes = append(d.bboxes, b.Tiled())
	}

	d.ys = d.ys[:0]
	for _, b := range d.bboxes {
		d.ys = append(d.ys, b.MinY, b.MaxY)
	}
	sort.Slice(d.ys, func(i, j int) bool { return d.ys[i] < d.ys[j] })
	d.ys = dedupSortedU32(d.ys)

	for s := 0; s+1 < len(d.ys); s++ {
		minY, maxY := d.ys[s], d.ys[s+1]

		d.intervals = d.intervals[:0]
		for _, b := range d.bboxes {
			if b.MinY < maxY && b.MaxY > minY {
				d.intervals = append(d.intervals, xInterval{b.MinX, b.MaxX})
			}
		}

		d.mergeIntervals(minY, maxY)
	}
}

func (d *Decomposer) mergeIntervals(minY, maxY uint32) {
	if len(d.intervals) == 0 {
		return
	}
	sort.Slice(d.intervals, func(i, j int) bool { return d.intervals[i].minX < d.intervals[j].minX })

	last := d.intervals[0]
	emit := func(iv xInterval) {
		if n := len(d.result); n > 0 {
			r := &d.result[n-1]
			if r.MinX == iv.minX && r.MaxX == iv.maxX && r.MaxY == minY {
				r.MaxY = maxY
				return
			}
		}
		d.result = append(d.result, Rect{MinX: iv.minX, MinY: minY, MaxX: iv.maxX, MaxY: maxY})
	}

	for _, iv := range d.intervals[1:] {
		if iv.minX <= last.maxX {
			if iv.maxX > last.maxX {
				last.maxX = iv.maxX
			}
		} else {
			emit(last)
			last = iv
		}
	}
	emit(last)
}

func dedupSortedU32(s []uint32) []uint32 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
