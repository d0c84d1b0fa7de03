package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sidewalkify/pkg/draw"
	"sidewalkify/pkg/geo"
	"sidewalkify/pkg/graph"
	"sidewalkify/pkg/streets"
)

func main() {
	input := flag.String("input", "", "Path to street centerlines GeoJSON file")
	output := flag.String("output", "", "Output sidewalks GeoJSON file path")
	format := flag.String("format", "GeoJSON", "Output format (only GeoJSON is supported)")
	precision := flag.Int("precision", 1, "Decimal places used to merge street endpoints into nodes")
	simplifyTol := flag.Float64("simplify", 0.05, "Douglas-Peucker tolerance applied to input geometries")
	resolution := flag.Int("resolution", 1, "Arc segments per quarter turn for round offset joins")
	lnglat := flag.Bool("lnglat", false, "Treat coordinates as lng/lat and use great-circle bearings")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: sidewalkify --input <streets.geojson> --output <sidewalks.geojson> [--format GeoJSON] [--precision 1] [--simplify 0.05] [--resolution 1] [--lnglat]")
		os.Exit(1)
	}
	if !strings.EqualFold(*format, "GeoJSON") {
		log.Fatalf("Unsupported output format %q (only GeoJSON is supported)", *format)
	}

	start := time.Now()

	// Step 1: Read streets.
	log.Println("Reading street centerlines...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	col, err := streets.ReadGeoJSON(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read streets: %v", err)
	}
	log.Printf("Read %d street(s)", len(col.Streets))

	// Step 2: Build the directed street graph.
	log.Println("Building street graph...")
	opts := graph.Options{
		Precision: *precision,
		Simplify:  *simplifyTol,
		Azimuth:   geo.AzimuthCartesian,
	}
	if *lnglat {
		opts.Azimuth = geo.AzimuthLngLat
	}
	g, err := graph.CreateGraph(col.Streets, opts)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	log.Printf("Graph: %d nodes, %d edges", g.NumNodes(), g.NumEdges())

	// Step 3: Trace block-face paths.
	log.Println("Finding paths...")
	paths := graph.FindPaths(g)
	log.Printf("Found %d path(s)", len(paths))

	// Step 4: Draw sidewalks.
	log.Println("Drawing sidewalks...")
	sidewalks := draw.DrawSidewalks(paths, draw.Options{Resolution: *resolution})
	log.Printf("Drew %d sidewalk(s)", len(sidewalks))

	// Step 5: Write output, carrying the input CRS members through.
	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	if err := streets.WriteGeoJSON(out, sidewalks, col.Extra); err != nil {
		out.Close()
		log.Fatalf("Failed to write sidewalks: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to close output file: %v", err)
	}

	log.Printf("Done in %v", time.Since(start).Round(time.Millisecond))
}
