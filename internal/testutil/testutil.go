// Package testutil provides shared test fixtures: a builder for synthetic
// houses that renders the house description, wall mesh and category table a
// real house ships with.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"testing"

	"github.com/banshee-data/navgrid/internal/fsutil"
	"github.com/banshee-data/navgrid/internal/house/scene"
)

// Standard heights used by fixtures.
const (
	WallHeight  = 2.5
	LevelHeight = 3.0
)

// Model ids registered in every fixture category table.
const (
	ModelDoor   = "door_1"
	ModelWindow = "window_1"
	ModelPerson = "person_1"
	ModelTable  = "table_1"
	ModelRug    = "rug_1"
)

type box struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

type node struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ModelID   string    `json:"modelId,omitempty"`
	RoomTypes *[]string `json:"roomTypes,omitempty"`
	BBox      box       `json:"bbox"`
}

type level struct {
	ID    string `json:"id"`
	BBox  box    `json:"bbox"`
	Nodes []node `json:"nodes"`
}

type wallGroup struct {
	name string
	b    box
}

// HouseBuilder assembles a synthetic house.
type HouseBuilder struct {
	ID     string
	Scale  float64
	Levels int
	level  box
	nodes  []node
	walls  []wallGroup
	cats   [][3]string
}

// NewHouse starts a single-level house whose ground footprint spans
// [x1,x2] x [z1,z2].
func NewHouse(id string, x1, z1, x2, z2 float64) *HouseBuilder {
	return &HouseBuilder{
		ID:     id,
		Scale:  1,
		Levels: 1,
		level:  box{Min: [3]float64{x1, 0, z1}, Max: [3]float64{x2, LevelHeight, z2}},
		cats: [][3]string{
			{ModelDoor, "door", "door"},
			{ModelWindow, "window", "window"},
			{ModelPerson, "person", "person"},
			{ModelTable, "table", "table"},
			{ModelRug, "floor_mat", "rug"},
		},
	}
}

// Room adds a room node with the given labels.
func (b *HouseBuilder) Room(id string, types []string, x1, z1, x2, z2 float64) *HouseBuilder {
	tps := append([]string(nil), types...)
	b.nodes = append(b.nodes, node{
		ID: id, Type: "Room", ModelID: "fr_" + id, RoomTypes: &tps,
		BBox: box{Min: [3]float64{x1, 0, z1}, Max: [3]float64{x2, LevelHeight, z2}},
	})
	return b
}

// UntypedRoom adds a room node without a roomTypes key.
func (b *HouseBuilder) UntypedRoom(id string, x1, z1, x2, z2 float64) *HouseBuilder {
	b.nodes = append(b.nodes, node{
		ID: id, Type: "Room", ModelID: "fr_" + id,
		BBox: box{Min: [3]float64{x1, 0, z1}, Max: [3]float64{x2, LevelHeight, z2}},
	})
	return b
}

// Object adds an object node with a full 3D box.
func (b *HouseBuilder) Object(id, model string, x1, y1, z1, x2, y2, z2 float64) *HouseBuilder {
	b.nodes = append(b.nodes, node{
		ID: id, Type: "Object", ModelID: model,
		BBox: box{Min: [3]float64{x1, y1, z1}, Max: [3]float64{x2, y2, z2}},
	})
	return b
}

// Door adds a full-height door object on the ground plane rectangle.
func (b *HouseBuilder) Door(id string, x1, z1, x2, z2 float64) *HouseBuilder {
	return b.Object(id, ModelDoor, x1, 0, z1, x2, 2.0, z2)
}

// Wall adds a floor-to-WallHeight wall group.
func (b *HouseBuilder) Wall(x1, z1, x2, z2 float64) *HouseBuilder {
	return b.WallGroup(fmt.Sprintf("Wall#%d", len(b.walls)), x1, 0, z1, x2, WallHeight, z2)
}

// WallGroup adds a mesh group with an explicit name and 3D extent.
func (b *HouseBuilder) WallGroup(name string, x1, y1, z1, x2, y2, z2 float64) *HouseBuilder {
	b.walls = append(b.walls, wallGroup{name: name, b: box{Min: [3]float64{x1, y1, z1}, Max: [3]float64{x2, y2, z2}}})
	return b
}

// OuterWalls encloses the level footprint with walls of thickness t.
func (b *HouseBuilder) OuterWalls(t float64) *HouseBuilder {
	x1, z1 := b.level.Min[0], b.level.Min[2]
	x2, z2 := b.level.Max[0], b.level.Max[2]
	return b.Wall(x1, z1, x2, z1+t).
		Wall(x1, z2-t, x2, z2).
		Wall(x1, z1, x1+t, z2).
		Wall(x2-t, z1, x2, z2)
}

// Category registers an extra model row.
func (b *HouseBuilder) Category(model, coarse, fine string) *HouseBuilder {
	b.cats = append(b.cats, [3]string{model, coarse, fine})
	return b
}

// JSON renders the house description.
func (b *HouseBuilder) JSON() []byte {
	levels := []level{{ID: "0", BBox: b.level, Nodes: b.nodes}}
	for i := 1; i < b.Levels; i++ {
		levels = append(levels, level{ID: fmt.Sprint(i), BBox: b.level})
	}
	out, err := json.Marshal(map[string]any{
		"id":            b.ID,
		"scaleToMeters": b.Scale,
		"levels":        levels,
	})
	if err != nil {
		panic(err)
	}
	return out
}

// OBJ renders each wall group as the eight corners of its box, followed by a
// floor group that must be skipped.
func (b *HouseBuilder) OBJ() []byte {
	var buf bytes.Buffer
	buf.WriteString("# synthetic house mesh\nmtllib house.mtl\n")
	for _, w := range b.walls {
		fmt.Fprintf(&buf, "g %s\n", w.name)
		for _, x := range []float64{w.b.Min[0], w.b.Max[0]} {
			for _, y := range []float64{w.b.Min[1], w.b.Max[1]} {
				for _, z := range []float64{w.b.Min[2], w.b.Max[2]} {
					fmt.Fprintf(&buf, "v %g %g %g\n", x, y, z)
				}
			}
		}
		buf.WriteString("vn 0 1 0\nf 1 2 3\n")
	}
	buf.WriteString("g Floor#0\nv -50 0 -50\nv 50 0 50\n")
	return buf.Bytes()
}

// CSV renders the category table.
func (b *HouseBuilder) CSV() []byte {
	var buf bytes.Buffer
	buf.WriteString("index,model_id,fine_grained_class,coarse_grained_class,empty_struct_obj,nyuv2_40class,wnsynsetid,wnsynsetkey\n")
	for i, c := range b.cats {
		fmt.Fprintf(&buf, "%d,%s,%s,%s,,%s,,\n", i+1, c[0], c[2], c[1], c[1])
	}
	return buf.Bytes()
}

// WriteTo stores the three files under dir and returns their paths.
func (b *HouseBuilder) WriteTo(t testing.TB, fsys fsutil.FileSystem, dir string) scene.Paths {
	t.Helper()
	p := scene.Paths{
		House:      path.Join(dir, "house.json"),
		Mesh:       path.Join(dir, "house.obj"),
		Categories: path.Join(dir, "ModelCategoryMapping.csv"),
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for name, data := range map[string][]byte{p.House: b.JSON(), p.Mesh: b.OBJ(), p.Categories: b.CSV()} {
		if err := fsys.WriteFile(name, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return p
}

// Scene loads the built house with the default robot heights.
func (b *HouseBuilder) Scene(t testing.TB) *scene.Scene {
	t.Helper()
	fsys := fsutil.NewMemoryFileSystem()
	p := b.WriteTo(t, fsys, b.ID)
	s, err := scene.Load(fsys, p, scene.LoadOptions{RobotHeight: 0.75, CarpetHeight: 0.15})
	if err != nil {
		t.Fatalf("load synthetic house: %v", err)
	}
	return s
}

// TwoRooms is a 4m x 2m house split by a wall at x=2 into a kitchen (west)
// and a bedroom (east). With door set, a 0.4m doorway is cut in the divider
// at z in [0.8, 1.2]. At resolution 40 each cell is 0.1m.
func TwoRooms(door bool) *HouseBuilder {
	b := NewHouse("two_rooms", 0, 0, 4, 2).
		Room("r_kitchen", []string{"Kitchen"}, 0, 0, 2, 2).
		Room("r_bedroom", []string{"Bedroom"}, 2, 0, 4, 2).
		OuterWalls(0.1).
		Wall(1.95, 0, 2.05, 2)
	if door {
		b.Door("o_door", 1.95, 0.8, 2.05, 1.2)
	}
	return b
}
