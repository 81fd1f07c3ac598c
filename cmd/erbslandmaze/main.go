package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/erbsland-dev/erbsland-maze/pkg/export"
	"github.com/erbsland-dev/erbsland-maze/pkg/maze"
	"github.com/erbsland-dev/erbsland-maze/pkg/verify"
)

const version = "1.0.0"

// stringSlice accumulates a repeatable flag (-e, -b, -c, -m,
// --svg-endpoint-color) into an ordered list, the way the teacher
// accumulates cfg.Keys/cfg.Constraints from YAML slices — here surfaced
// as repeatable flags instead since the CLI grammar calls for repetition
// at the flag level.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	width  = flag.Float64("x", 0, "Canvas width in mm (required)")
	height = flag.Float64("y", 0, "Canvas height in mm (required)")

	wallThickness = flag.Float64("t", 0, "Wall thickness in mm (default 1.7)")
	sideLength    = flag.Float64("l", 0, "Room side length in mm (default 4.0)")
	fillMode      = flag.String("i", "", "Fill mode: stretch_edge|se, stretch|s, square_top_left|qt, square_center|q, fixed_top_left|ft, fixed_center|f")

	widthParity  = flag.String("width-parity", "", "Width parity: odd, even, none (default odd)")
	heightParity = flag.String("height-parity", "", "Height parity: odd, even, none (default odd)")

	frameInsets = flag.String("f", "", "Frame modifier insets, e.g. 1 or 1,2,1,2")

	maxAttempts  = flag.Int("maximum-attempts", 0, "Maximum retry attempts (default 20)")
	allowIslands = flag.Bool("allow-islands", true, "Allow unvisited Normal rooms after carving")
	layoutOnly   = flag.Bool("layout-only", false, "Stop after layout/endpoints, emit grid with all walls open")
	silent       = flag.Bool("silent", false, "Suppress status output")
	ignoreErrors = flag.Bool("ignore-errors", false, "Skip modifiers that fail to apply (no warning is printed for them) instead of aborting")
	seedFlag     = flag.Uint64("seed", 0, "Master seed (0 = time-derived)")

	outPath = flag.String("o", "", "Output file base path (default: maze_<seed>)")
	format  = flag.String("format", "json", "Export format: json, svg, or all")

	noMarks           = flag.Bool("no-marks", false, "Suppress endpoint markers in SVG output")
	svgUnit           = flag.String("svg-unit", "mm", "SVG unit: mm or px")
	svgDPI            = flag.Float64("svg-dpi", 96, "SVG resolution in DPI (used only with --svg-unit px)")
	svgZeroPoint      = flag.String("svg-zero-point", "top_left", "SVG coordinate origin: center or top_left")
	svgNoBackground   = flag.Bool("svg-no-background", false, "Omit the SVG background rectangle")
	svgBackgroundColor = flag.String("svg-background-color", "", "SVG background color (default #ffffff)")
	svgRoomColor      = flag.String("svg-room-color", "", "SVG room fill color (default: none)")

	versionF = flag.Bool("version", false, "Print version and exit")
	help     = flag.Bool("help", false, "Show help message")
)

var (
	endpointSpecs stringSlice
	blankSpecs    stringSlice
	closingSpecs  stringSlice
	mergeSpecs    stringSlice
	endpointColors stringSlice
)

func init() {
	flag.Var(&endpointSpecs, "e", "Endpoint spec: placement[/offset[/x]] (repeatable)")
	flag.Var(&blankSpecs, "b", "Blank modifier spec: placement[/size[/offset]] (repeatable)")
	flag.Var(&closingSpecs, "c", "Closing modifier spec: [^]closing/placement[/size[/offset]] (repeatable)")
	flag.Var(&mergeSpecs, "m", "Merge modifier spec: placement[/size[/offset]] (repeatable)")
	flag.Var(&endpointColors, "svg-endpoint-color", "SVG endpoint marker color (repeatable)")
}

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("erbslandmaze version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -x and -y are required and must be > 0")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid -format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	exitCode, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode)
}

// run builds a Config from flags, generates the maze, and exports it.
// It returns the process exit code spec.md §6 assigns to each outcome:
// 0 success, 1 invalid configuration, 2 unrecoverable generation failure.
// With --ignore-errors an exhausted attempt budget is printed as a warning
// and returns 0; no maze file is written in that case.
func run() (int, error) {
	cfg, err := buildConfig()
	if err != nil {
		return 1, fmt.Errorf("invalid configuration: %w", err)
	}

	var sink verify.StatusSink = verify.NullSink{}
	if !*silent {
		sink = &printingSink{}
	}
	gen := maze.NewGeneratorWithStatus(sink)

	start := time.Now()
	model, err := gen.Generate(cfg)
	if err != nil {
		if *ignoreErrors && errors.Is(err, maze.ErrMaxAttemptsExceeded) {
			fmt.Fprintf(os.Stderr, "Warning: %v (ignored)\n", err)
			return 0, nil
		}
		return 2, fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)
	if !*silent {
		fmt.Printf("Generated %dx%d maze (seed=%d) in %v\n", model.NX(), model.NY(), model.Seed, elapsed)
	}

	base := *outPath
	if base == "" {
		base = fmt.Sprintf("maze_%d", model.Seed)
	}

	if *format == "json" || *format == "all" {
		if err := exportJSON(model, base); err != nil {
			return 2, err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(model, base); err != nil {
			return 2, err
		}
	}
	return 0, nil
}

func buildConfig() (*maze.Config, error) {
	cfg := &maze.Config{
		Width:           *width,
		Height:          *height,
		WallThickness:   *wallThickness,
		SideLength:      *sideLength,
		FillMode:        *fillMode,
		WidthParity:     *widthParity,
		HeightParity:    *heightParity,
		MaximumAttempts: *maxAttempts,
		LayoutOnly:      *layoutOnly,
		IgnoreErrors:    *ignoreErrors,
		Silent:          *silent,
		Seed:            *seedFlag,
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	allow := *allowIslands
	cfg.AllowIslands = &allow

	for _, spec := range endpointSpecs {
		e, err := parseEndSpec(spec)
		if err != nil {
			return nil, err
		}
		cfg.Endpoints = append(cfg.Endpoints, e)
	}

	if *frameInsets != "" {
		cfg.Modifiers = append(cfg.Modifiers, maze.ModifierCfg{Kind: "frame", Insets: *frameInsets})
	}
	for _, spec := range blankSpecs {
		m, err := parsePlacementSizeOffsetSpec("blank", spec)
		if err != nil {
			return nil, err
		}
		cfg.Modifiers = append(cfg.Modifiers, m)
	}
	for _, spec := range mergeSpecs {
		m, err := parsePlacementSizeOffsetSpec("merge", spec)
		if err != nil {
			return nil, err
		}
		cfg.Modifiers = append(cfg.Modifiers, m)
	}
	for _, spec := range closingSpecs {
		m, err := parseClosingSpec(spec)
		if err != nil {
			return nil, err
		}
		cfg.Modifiers = append(cfg.Modifiers, m)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseEndSpec parses "placement[/offset[/x]]" (ENDSPEC). A literal
// trailing "x" marks the endpoint as a dead end.
func parseEndSpec(spec string) (maze.EndpointCfg, error) {
	parts := strings.Split(spec, "/")
	cfg := maze.EndpointCfg{Placement: parts[0]}
	if len(parts) > 1 {
		cfg.Offset = parts[1]
	}
	if len(parts) > 2 && parts[2] == "x" {
		cfg.DeadEnd = true
	}
	if len(parts) > 3 {
		return maze.EndpointCfg{}, fmt.Errorf("bad endpoint spec %q: too many segments", spec)
	}
	return cfg, nil
}

// parsePlacementSizeOffsetSpec parses "placement[/size[/offset]]"
// (BLANKSPEC, MERGESPEC) for the given modifier kind.
func parsePlacementSizeOffsetSpec(kind, spec string) (maze.ModifierCfg, error) {
	parts := strings.Split(spec, "/")
	cfg := maze.ModifierCfg{Kind: kind, Placement: parts[0]}
	if len(parts) > 1 {
		cfg.Size = parts[1]
	}
	if len(parts) > 2 {
		cfg.Offset = parts[2]
	}
	if len(parts) > 3 {
		return maze.ModifierCfg{}, fmt.Errorf("bad %s spec %q: too many segments", kind, spec)
	}
	return cfg, nil
}

// parseClosingSpec parses "[^]closing/placement[/size[/offset]]"
// (CLOSINGSPEC).
func parseClosingSpec(spec string) (maze.ModifierCfg, error) {
	inverted := false
	if strings.HasPrefix(spec, "^") {
		inverted = true
		spec = spec[1:]
	}
	parts := strings.SplitN(spec, "/", 2)
	if len(parts) != 2 {
		return maze.ModifierCfg{}, fmt.Errorf("bad closing spec %q: want closing/placement[/size[/offset]]", spec)
	}
	rest, err := parsePlacementSizeOffsetSpec("closing", parts[1])
	if err != nil {
		return maze.ModifierCfg{}, err
	}
	rest.Closing = parts[0]
	rest.Inverted = inverted
	return rest, nil
}

func exportJSON(model *maze.Model, base string) error {
	filename := base + ".json"
	if err := export.SaveJSONToFile(model, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if !*silent {
		info, _ := os.Stat(filename)
		fmt.Printf("Wrote %s (%d bytes)\n", filename, info.Size())
	}
	return nil
}

func exportSVG(model *maze.Model, base string) error {
	opts, err := buildSVGOptions()
	if err != nil {
		return err
	}
	filename := base + ".svg"
	if err := export.SaveSVGToFile(model, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if !*silent {
		info, _ := os.Stat(filename)
		fmt.Printf("Wrote %s (%d bytes)\n", filename, info.Size())
	}
	return nil
}

func buildSVGOptions() (export.SVGOptions, error) {
	opts := export.DefaultSVGOptions()
	switch strings.ToLower(*svgUnit) {
	case "mm":
		opts.Unit = export.UnitMM
	case "px":
		opts.Unit = export.UnitPX
	default:
		return opts, fmt.Errorf("bad --svg-unit %q: want mm or px", *svgUnit)
	}
	opts.DPI = *svgDPI
	switch strings.ToLower(*svgZeroPoint) {
	case "top_left":
		opts.ZeroPoint = export.ZeroTopLeft
	case "center":
		opts.ZeroPoint = export.ZeroCenter
	default:
		return opts, fmt.Errorf("bad --svg-zero-point %q: want center or top_left", *svgZeroPoint)
	}
	opts.NoBackground = *svgNoBackground
	if *svgBackgroundColor != "" {
		opts.BackgroundColor = *svgBackgroundColor
	}
	opts.RoomColor = *svgRoomColor
	if len(endpointColors) > 0 {
		opts.EndpointColors = endpointColors
	}
	opts.ShowMarks = !*noMarks
	return opts, nil
}

// printingSink prints each status event to stdout, the way the teacher's
// *verbose closures in cmd/dungeongen/main.go report progress.
type printingSink struct{}

func (printingSink) Emit(e verify.Event) {
	fmt.Printf("[%s] %s\n", e.Kind, e.String())
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: erbslandmaze -x WIDTH -y HEIGHT [options]")
	fmt.Fprintln(os.Stderr, "Run 'erbslandmaze --help' for detailed help")
}

func printHelp() {
	fmt.Printf("erbslandmaze version %s\n\n", version)
	fmt.Println("Generates rectangular mazes with layout customization.")
	fmt.Println("\nUsage:")
	fmt.Println("  erbslandmaze -x WIDTH -y HEIGHT [options]")
	fmt.Println("\nRequired flags:")
	fmt.Println("  -x float      Canvas width in mm")
	fmt.Println("  -y float      Canvas height in mm")
	fmt.Println("\nLayout flags:")
	fmt.Println("  -t float      Wall thickness in mm (default 1.7)")
	fmt.Println("  -l float      Room side length in mm (default 4.0)")
	fmt.Println("  -i string     Fill mode (default stretch_edge)")
	fmt.Println("  --width-parity, --height-parity string   odd|even|none (default odd)")
	fmt.Println("\nModifier flags (repeatable):")
	fmt.Println("  -e ENDSPEC       placement[/offset[/x]]")
	fmt.Println("  -f INSETS        frame modifier insets")
	fmt.Println("  -b BLANKSPEC     placement[/size[/offset]]")
	fmt.Println("  -c CLOSINGSPEC   [^]closing/placement[/size[/offset]]")
	fmt.Println("  -m MERGESPEC     placement[/size[/offset]]")
	fmt.Println("\nGeneration flags:")
	fmt.Println("  --maximum-attempts int   default 20")
	fmt.Println("  --allow-islands bool     default true")
	fmt.Println("  --layout-only            stop after layout/endpoints")
	fmt.Println("  --silent                 suppress status output")
	fmt.Println("  --ignore-errors          downgrade MaxAttemptsExceeded to a warning")
	fmt.Println("  --seed uint              master seed (0 = time-derived)")
	fmt.Println("\nOutput flags:")
	fmt.Println("  -o PATH           output file base path")
	fmt.Println("  --format string   json|svg|all (default json)")
	fmt.Println("  --no-marks                suppress SVG endpoint markers")
	fmt.Println("  --svg-unit mm|px")
	fmt.Println("  --svg-dpi float")
	fmt.Println("  --svg-zero-point center|top_left")
	fmt.Println("  --svg-no-background")
	fmt.Println("  --svg-background-color string")
	fmt.Println("  --svg-room-color string")
	fmt.Println("  --svg-endpoint-color string   (repeatable)")
	fmt.Println("\nExamples:")
	fmt.Println("  erbslandmaze -x 40 -y 40 -l 5")
	fmt.Println("  erbslandmaze -x 50 -y 50 -f 1 -e w -e c -e n/0/x -e e/0/x -e s/0/x -m c/3")
}
