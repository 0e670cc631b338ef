package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spektr-org/popstat/dashboard"
	"github.com/spektr-org/popstat/engine"
	"github.com/spektr-org/popstat/export"
	"github.com/spektr-org/popstat/nomis"
	"github.com/spektr-org/popstat/render"
)

// ============================================================================
// POPSTAT CLI — NOMIS regional population dashboard
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	addr := flag.String("addr", "127.0.0.1:8080", "HTTP listen address")
	yearA := flag.Int("year-a", dashboard.DefaultYearA, "Bar chart year and share baseline")
	yearB := flag.Int("year-b", dashboard.DefaultYearB, "Pie chart year and share comparison")
	baseURL := flag.String("base-url", nomis.DefaultBaseURL, "NOMIS API root")
	timeout := flag.Duration("timeout", nomis.DefaultTimeout, "Per-fetch timeout")
	cacheKind := flag.String("cache", "memory", "Fetch cache: memory (unbounded) or lru")
	cacheSize := flag.Int("cache-size", 16, "Entries kept by the lru cache")
	logo := flag.String("logo", "Images/DfE.jpg", "Logo image shown in the page header (empty = none)")
	exportPath := flag.String("export", "", "Write an XLSX workbook to this file and exit")
	chartsDir := flag.String("charts", "", "Write bar, pie and share-change PNGs to this directory and exit")
	printResult := flag.Bool("print", false, "Print the dashboard result and exit")
	format := flag.String("format", "json", "Output format for --print: json, pretty, text, csv")
	outFile := flag.String("out", "", "Write --print output to file instead of stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `popstat — NOMIS population estimates by region

Usage:
  popstat                                   serve the dashboard on 127.0.0.1:8080
  popstat --year-a 2022 --year-b 2023       compare other years
  popstat --print --format text             one-line summary of the share change
  popstat --export regions.xlsx             workbook of both years and the share change
  popstat --charts out/                     bar.png, pie.png, share-change.png

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Formats:
  json      Full JSON result (default)
  pretty    Pretty-printed JSON
  text      Reply line and any warnings
  csv       Share comparison as CSV (ready for Sheets/Excel)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("popstat %s\n", version)
		os.Exit(0)
	}

	// ── Fetcher ───────────────────────────────────────────────────────────
	cfg := nomis.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.Timeout = *timeout

	switch *cacheKind {
	case "memory":
		cfg.Cache = nomis.NewMemoryCache()
	case "lru":
		c, err := nomis.NewLRUCache(*cacheSize)
		if err != nil {
			fatalf("Invalid --cache-size: %v", err)
		}
		cfg.Cache = c
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown --cache %q\n", *cacheKind)
		flag.Usage()
		os.Exit(1)
	}

	client := nomis.New(cfg)
	svc := dashboard.NewService(client, dashboard.Config{
		YearA:    *yearA,
		YearB:    *yearB,
		LogoPath: *logo,
	})

	// ── One-shot modes ────────────────────────────────────────────────────
	if *printResult || *exportPath != "" || *chartsDir != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := svc.Build(ctx)
		if err != nil {
			fatalf("%s", dashboard.UserMessage(err))
		}
		for _, msg := range d.Result.Errors {
			log.Printf("⚠️ %s", msg)
		}

		if *exportPath != "" {
			writeWorkbook(*exportPath, d)
		}
		if *chartsDir != "" {
			writeCharts(*chartsDir, d.Result)
		}
		if *printResult {
			writer := os.Stdout
			if *outFile != "" {
				f, err := os.Create(*outFile)
				if err != nil {
					fatalf("Failed to create output file: %v", err)
				}
				defer f.Close()
				writer = f
			}
			writeResult(writer, d.Result, *format)
		}
		return
	}

	// ── Serve ─────────────────────────────────────────────────────────────
	serve(*addr, dashboard.NewServer(svc))
}

func serve(addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️ Shutdown: %v", err)
		}
	}()

	log.Printf("🚀 popstat %s listening on http://%s", version, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatalf("Server failed: %v", err)
	}
	log.Printf("👋 popstat stopped")
}

// ============================================================================
// FILE OUTPUT
// ============================================================================

func writeWorkbook(path string, d *dashboard.Dashboard) {
	f, err := os.Create(path)
	if err != nil {
		fatalf("Failed to create workbook: %v", err)
	}
	defer f.Close()

	err = export.WriteWorkbook(f,
		export.RegionSheet(d.Request.YearA, d.TableA),
		export.RegionSheet(d.Request.YearB, d.TableB),
		export.ShareSheet(d.Request.YearA, d.Request.YearB, d.Result.Share),
	)
	if err != nil {
		fatalf("Export failed: %v", err)
	}
	log.Printf("📄 Workbook written to %s", path)
}

func writeCharts(dir string, result *engine.Result) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fatalf("Failed to create chart directory: %v", err)
	}

	charts := map[string]*engine.ChartConfig{
		dashboard.ChartKindBar:         result.Bar,
		dashboard.ChartKindPie:         result.Pie,
		dashboard.ChartKindShareChange: result.ShareChange,
	}
	for kind, cfg := range charts {
		if cfg == nil {
			log.Printf("⚠️ Skipping %s chart: unavailable", kind)
			continue
		}
		path := filepath.Join(dir, kind+".png")
		if err := writeChart(path, cfg); err != nil {
			fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("🖼️ %s", path)
	}
}

func writeChart(path string, cfg *engine.ChartConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PNG(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ============================================================================
// RESULT OUTPUT
// ============================================================================

func writeResult(w io.Writer, result *engine.Result, format string) {
	switch format {
	case "csv":
		writeShareCSV(w, result.Share)
	case "text":
		lines := []string{result.Reply}
		lines = append(lines, result.Errors...)
		fmt.Fprintln(w, strings.Join(lines, "\n"))
	default:
		writeJSON(w, result, format)
	}
}

func writeShareCSV(w io.Writer, share *engine.ShareTable) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if share == nil {
		cw.Write([]string{"Result", "No share comparison"})
		return
	}

	cw.Write([]string{"Region", fmt.Sprintf("share_%d", share.YearA), fmt.Sprintf("share_%d", share.YearB), "pp_change"})
	for _, r := range share.Records {
		cw.Write([]string{r.Region, fmtNum(r.ShareA), fmtNum(r.ShareB), fmtNum(r.PointChange)})
	}
}

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 4 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.4f", v)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
