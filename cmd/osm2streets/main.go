package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	osmparser "sidewalkify/pkg/osm"
	"sidewalkify/pkg/streets"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "streets.geojson", "Output streets GeoJSON file path")
	width := flag.Float64("width", 1.5e-4, "Default sidewalk offset per tagged side, in coordinate units (degrees for lng/lat)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: osm2streets --input <extract.osm.pbf> [--output streets.geojson] [--width 1.5e-4]")
		os.Exit(1)
	}

	start := time.Now()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Parsing OSM data...")
	sts, err := osmparser.Parse(context.Background(), f, osmparser.ParseOptions{DefaultWidth: *width})
	if err != nil {
		log.Fatalf("Failed to parse OSM data: %v", err)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	if err := streets.WriteStreetsGeoJSON(out, sts, nil); err != nil {
		out.Close()
		log.Fatalf("Failed to write streets: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to close output file: %v", err)
	}

	log.Printf("Wrote %d street(s) in %v", len(sts), time.Since(start).Round(time.Millisecond))
}
