// Command-line entry point for the METAR report decoder.
//
// The NOAA weather server publishes one decoded bulletin per station,
// refreshed hourly. This CLI fetches a station's bulletin (or reads one
// from a file) and prints the decoded values.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"metar_parser/internal/fetch"
	"metar_parser/internal/metar"
	"metar_parser/internal/storage"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "metar - decoded METAR bulletin tool:")
	fmt.Fprintln(w, "  fetch   - download and decode a station's bulletin")
	fmt.Fprintln(w, "  decode  - decode a bulletin from a file or stdin")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  metar fetch -station EYVI [-cache /tmp/metar-cache.db] [-proxy URL] [-json] [-pretty]")
	fmt.Fprintln(w, "  metar decode -station EYVI [-input report.txt] [-json] [-pretty]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Station IDs are the four-letter ICAO codes, case-insensitive.")
	fmt.Fprintln(w, "  - With -cache, bulletins younger than 65 minutes are served locally.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "fetch":
		runFetch(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	station := fs.String("station", "", "Station ID (e.g. EYVI)")
	cachePath := fs.String("cache", "", "SQLite cache file (default: no caching)")
	proxy := fs.String("proxy", envOrDefault("HTTP_PROXY", ""), "HTTP proxy URL")
	baseURL := fs.String("base-url", metar.DefaultBaseURL, "Report server base URL")
	asJSON := fs.Bool("json", false, "Output JSON instead of the field list")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	_ = fs.Parse(args)

	if *station == "" {
		fmt.Fprintln(os.Stderr, "-station is required")
		os.Exit(2)
	}
	stationID := strings.ToUpper(*station)

	opts := []fetch.Option{fetch.WithBaseURL(*baseURL)}
	if *proxy != "" {
		opts = append(opts, fetch.WithProxy(*proxy))
	}
	fetcher := fetch.New(opts...)

	var cache *storage.Cache
	if *cachePath != "" {
		var err error
		cache, err = storage.OpenCache(*cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
			os.Exit(1)
		}
		defer cache.Close()
	}

	ctx := context.Background()

	var raw string
	var cached bool
	if cache != nil {
		if report, ok, err := cache.Get(stationID); err == nil && ok {
			raw, cached = report, true
		}
	}
	if !cached {
		var err error
		raw, err = fetcher.Fetch(ctx, stationID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fetch failed: %v\n", err)
			os.Exit(1)
		}
		if cache != nil {
			if err := cache.Put(stationID, raw); err != nil {
				fmt.Fprintf(os.Stderr, "Cache write failed: %v\n", err)
			}
		}
	}

	rep := metar.NewFromReport(stationID, raw)
	rep.ReportURL = fetcher.ReportURL(stationID)
	if err := rep.ParseReport(); err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
	}

	printReport(rep, *asJSON, *pretty)
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	station := fs.String("station", "", "Station ID the bulletin belongs to")
	inPath := fs.String("input", "", "Bulletin text file (default: stdin)")
	asJSON := fs.Bool("json", false, "Output JSON instead of the field list")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	rep, err := metar.Decode(*station, string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
	}

	printReport(rep, *asJSON, *pretty)
}

func printReport(rep *metar.WeatherReport, asJSON, pretty bool) {
	if asJSON {
		var b []byte
		var err error
		if pretty {
			b, err = json.MarshalIndent(rep, "", "  ")
		} else {
			b, err = json.Marshal(rep)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}

	for _, f := range rep.FieldList() {
		fmt.Printf("%-30s %s\n", f.Name, f.Value)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
