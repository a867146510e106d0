// meshgen is a headless harness for the convex volume editor. It
// stands in for the plugin host: it owns the frame loop (a stdin
// command loop), feeds decoded clicks into the edit session, and
// receives the tile rebuild requests the session emits.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Amadeus-/MQ2Nav/internal/config"
	"github.com/Amadeus-/MQ2Nav/internal/logger"
	"github.com/Amadeus-/MQ2Nav/internal/navmesh"
	"github.com/Amadeus-/MQ2Nav/internal/tool"
	"github.com/Amadeus-/MQ2Nav/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== MeshGen Volume Editor ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	mesh := buildMesh(cfg)
	session := tool.New(mesh, &logRebuilder{}, tool.Settings{
		BoxHeight:    cfg.Editor.BoxHeight,
		BoxDescent:   cfg.Editor.BoxDescent,
		PolyOffset:   cfg.Editor.PolyOffset,
		SnapDistance: cfg.Editor.SnapDistance,
	}, logger.Log)

	runLoop(session, mesh)
}

// logRebuilder stands in for the tile baking pipeline: it receives
// the exact set of tiles whose pathfinding data must be rebuilt.
type logRebuilder struct{}

func (r *logRebuilder) RebuildTiles(tiles []navmesh.TileRef) {
	logger.Info("rebuilding tiles", zap.Int("count", len(tiles)), zap.Any("refs", tiles))
}

// buildMesh seeds a demo mesh: an 8x8 built-tile grid and a few area
// types, standing in for data normally supplied by the baking
// pipeline and the area editor.
func buildMesh(cfg *config.Config) *navmesh.Mesh {
	areas := navmesh.NewAreaRegistry(cfg.Mesh.InvalidAreaCost)
	seed := []navmesh.PolyAreaType{
		{ID: 1, Name: "Water", Color: navmesh.Color{B: 255, A: 255}, Cost: 10},
		{ID: 2, Name: "Road", Color: navmesh.Color{R: 128, G: 96, B: 64, A: 255}, Cost: 0.5},
		{ID: 3, Name: "Avoid", Color: navmesh.Color{R: 255, A: 255}, Unwalkable: true},
	}
	for _, area := range seed {
		if err := areas.AddArea(area); err != nil {
			logger.Warn("skipping seed area", zap.Uint8("id", uint8(area.ID)), zap.Error(err))
		}
	}

	origin := math.Vec3{X: cfg.Mesh.OriginX, Y: cfg.Mesh.OriginY, Z: cfg.Mesh.OriginZ}
	mesh := navmesh.NewMesh(origin, cfg.Mesh.TileSize, areas, logger.Log)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			mesh.AddTile(x, y, -100, 100)
		}
	}
	logger.Info("mesh ready",
		zap.Int("tiles", mesh.TileCount()),
		zap.Float32("tile_size", mesh.TileSize()))
	return mesh
}

func runLoop(session *tool.ConvexVolumeTool, mesh *navmesh.Mesh) {
	printUsage()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", session.Mode())
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		command := fields[0]
		args := fields[1:]

		switch command {
		case "click":
			cmdClick(session, args, false, false)
		case "finish":
			cmdClick(session, args, false, true)
		case "delete":
			cmdClick(session, args, true, false)
		case "new":
			session.BeginCreate()
		case "list", "ls":
			cmdList(session, mesh)
		case "areas":
			cmdAreas(mesh)
		case "select":
			cmdSelect(session, args)
		case "name":
			session.SetName(strings.Join(args, " "))
		case "area":
			cmdSetArea(session, args)
		case "hmin":
			cmdSetHeight(session.SetHeightMin, args)
		case "hmax":
			cmdSetHeight(session.SetHeightMax, args)
		case "save":
			if tiles := session.SaveChanges(); tiles == nil {
				fmt.Println("nothing to save")
			}
		case "del":
			if tiles := session.DeleteSelected(); tiles == nil {
				fmt.Println("nothing selected")
			}
		case "cancel":
			session.Reset()
		case "status":
			fmt.Printf("mode=%s points=%d hull=%d selected=%d modified=%v\n",
				session.Mode(), session.PointCount(), session.HullCount(),
				session.CurrentVolumeID(), session.Modified())
		case "help", "?":
			printUsage()
		case "quit", "exit", "q":
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		}
	}
}

func printUsage() {
	fmt.Println(`meshgen - convex volume editor harness

Commands:
  click <x> <y> <z>    Place a point (starts a shape if idle)
  finish [x y z]       Commit the shape (finish-modifier click)
  delete <x> <y> <z>   Delete the volume containing the point
  new                  Start a new shape, dropping any selection
  list                 List volumes
  areas                List area types
  select <id>          Edit an existing volume
  name <text>          Set volume name (new shape or selection)
  area <id>            Set area type (new shape or selection)
  hmin <v> / hmax <v>  Adjust the selected volume's height range
  save                 Save changes to the selected volume
  del                  Delete the selected volume
  cancel               Reset to idle
  status               Show session state
  quit                 Exit`)
}

func parseVec3(args []string) (math.Vec3, bool) {
	if len(args) < 3 {
		return math.Vec3{}, false
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return math.Vec3{}, false
		}
		out[i] = v
	}
	return math.Vec3{X: float32(out[0]), Y: float32(out[1]), Z: float32(out[2])}, true
}

func cmdClick(session *tool.ConvexVolumeTool, args []string, shift, finish bool) {
	p, ok := parseVec3(args)
	if !ok {
		if !finish {
			fmt.Fprintln(os.Stderr, "Usage: click|delete <x> <y> <z>")
			return
		}
		// A bare "finish" commits at the last placed point.
		pts := session.Points()
		if len(pts) == 0 {
			fmt.Println("no shape in progress")
			return
		}
		p = pts[len(pts)-1]
	}

	tiles := session.HandleClick(p, shift, finish)
	if len(tiles) > 0 {
		fmt.Printf("%d tile(s) affected\n", len(tiles))
	}
}

func cmdList(session *tool.ConvexVolumeTool, mesh *navmesh.Mesh) {
	vols := mesh.GetConvexVolumes()
	fmt.Printf("%d Volumes\n", len(vols))
	for _, vol := range vols {
		marker := "  "
		if vol.ID == session.CurrentVolumeID() {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, vol.Label(mesh.Areas()))
	}
}

func cmdAreas(mesh *navmesh.Mesh) {
	for _, area := range mesh.Areas().PolyAreas() {
		name := area.Name
		if name == "" {
			name = "Unnamed Area"
		}
		attrs := fmt.Sprintf("cost=%g", area.Cost)
		if area.Unwalkable {
			attrs = "unwalkable"
		}
		fmt.Printf("%3d: %s (%s)\n", area.ID, name, attrs)
	}
}

func cmdSelect(session *tool.ConvexVolumeTool, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: select <id>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad volume id: %s\n", args[0])
		return
	}
	if !session.SelectVolume(uint32(id)) {
		fmt.Printf("no volume with id %d\n", id)
	}
}

func cmdSetArea(session *tool.ConvexVolumeTool, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: area <id>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad area id: %s\n", args[0])
		return
	}
	session.SetAreaType(navmesh.AreaID(id))
}

func cmdSetHeight(set func(float32), args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hmin|hmax <value>")
		return
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad height: %s\n", args[0])
		return
	}
	set(float32(v))
}
