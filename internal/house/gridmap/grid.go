package gridmap

// Rect is an inclusive integer rectangle of grid cells.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X1 && c.X <= r.X2 && c.Y >= r.Y1 && c.Y <= r.Y2
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.X2 < r.X1 || r.Y2 < r.Y1
}

// Width is the number of columns covered along X.
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.X2 - r.X1 + 1
}

// Height is the number of rows covered along Y.
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Y2 - r.Y1 + 1
}

// Clip intersects r with the lattice [0, n] x [0, n].
func (r Rect) Clip(n int) Rect {
	return Rect{
		X1: max(r.X1, 0), Y1: max(r.Y1, 0),
		X2: min(r.X2, n), Y2: min(r.Y2, n),
	}
}

// Grid is a square (N+1)x(N+1) layer stored flat as Data[x*(N+1)+y].
type Grid[T any] struct {
	N    int
	Data []T
}

// NewGrid allocates a zeroed grid for resolution n.
func NewGrid[T any](n int) *Grid[T] {
	side := n + 1
	return &Grid[T]{N: n, Data: make([]T, side*side)}
}

// NewFilledGrid allocates a grid for resolution n with every cell set to v.
func NewFilledGrid[T any](n int, v T) *Grid[T] {
	g := NewGrid[T](n)
	for i := range g.Data {
		g.Data[i] = v
	}
	return g
}

// Side is the number of cells along one axis.
func (g *Grid[T]) Side() int {
	return g.N + 1
}

// Inside reports whether (x, y) indexes a cell of g.
func (g *Grid[T]) Inside(x, y int) bool {
	return x >= 0 && y >= 0 && x <= g.N && y <= g.N
}

// Index returns the flat offset of (x, y). The caller checks bounds.
func (g *Grid[T]) Index(x, y int) int {
	return x*(g.N+1) + y
}

// At returns the value at (x, y). The caller checks bounds.
func (g *Grid[T]) At(x, y int) T {
	return g.Data[x*(g.N+1)+y]
}

// Set writes v at (x, y). The caller checks bounds.
func (g *Grid[T]) Set(x, y int, v T) {
	g.Data[x*(g.N+1)+y] = v
}

// Fill writes v into every cell of r that lies inside g.
func (g *Grid[T]) Fill(r Rect, v T) {
	r = r.Clip(g.N)
	side := g.N + 1
	for x := r.X1; x <= r.X2; x++ {
		row := g.Data[x*side : (x+1)*side]
		for y := r.Y1; y <= r.Y2; y++ {
			row[y] = v
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{N: g.N, Data: make([]T, len(g.Data))}
	copy(out.Data, g.Data)
	return out
}

// Count returns the number of cells for which keep returns true.
func (g *Grid[T]) Count(keep func(T) bool) int {
	n := 0
	for _, v := range g.Data {
		if keep(v) {
			n++
		}
	}
	return n
}
