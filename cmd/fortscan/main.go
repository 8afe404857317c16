package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortmig/fortscan/internal/analysis"
	"github.com/fortmig/fortscan/internal/manifest"
	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/internal/parser/fortran"
	"github.com/fortmig/fortscan/internal/report"
	"github.com/fortmig/fortscan/internal/scanner"
)

// fortscan runs the full analysis in-process and writes the CSV export and
// markdown gap report to local files. No services are required.
func main() {
	_ = godotenv.Load(".env") // ignore error if .env missing

	var (
		root         = flag.String("root", "", "scan root directory (required)")
		manifestPath = flag.String("manifest", "", "scan manifest JSON path (required)")
		csvPath      = flag.String("csv", "gap-report.csv", "CSV output path")
		reportPath   = flag.String("report", "gap-report.md", "markdown report output path")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *root == "" || *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fortscan -root <dir> -manifest <file> [-csv <file>] [-report <file>]")
		os.Exit(2)
	}

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		logger.Error("load manifest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	inputs, err := scanner.Scan(*root)
	if err != nil {
		logger.Error("scan source tree", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("source tree scanned", slog.Int("files", len(inputs)))

	registry := parser.NewRegistry()
	fp := fortran.New()
	for _, ext := range fortran.Suffixes {
		registry.Register(ext, fp)
	}

	snap := analysis.NewSnapshot()
	for _, input := range inputs {
		p := registry.ForFile(input.Path)
		if p == nil {
			continue
		}
		ext, err := p.Parse(input)
		if err != nil {
			logger.Error("parse file", slog.String("path", input.Path), slog.String("error", err.Error()))
			os.Exit(1)
		}
		result := parser.FileResult{
			Path:       input.Path,
			Dir:        input.Dir,
			Language:   p.Language(),
			Extraction: *ext,
		}
		if err := snap.Add(result); err != nil {
			logger.Error("index file", slog.String("path", input.Path), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	edges := snap.ResolveEdges()
	snap.SeedOrigins(m.DirToModules())
	snap.Propagate()
	totals := snap.Classify()

	rows := report.Rows(snap, m)
	unresolved := report.Unresolved(snap)

	logger.Info("analysis complete",
		slog.Int("files", totals.Total),
		slog.Int("edges", edges),
		slog.Int("owned", totals.Owned),
		slog.Int("support", totals.Support),
		slog.Int("out_of_scope", totals.OutOfScope),
		slog.Int("unresolved", len(unresolved)))

	csvFile, err := os.Create(*csvPath)
	if err != nil {
		logger.Error("create csv file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := report.WriteCSV(csvFile, rows); err != nil {
		csvFile.Close()
		logger.Error("write csv", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := csvFile.Close(); err != nil {
		logger.Error("close csv file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	meta := report.Meta{
		GeneratedAt:  time.Now().UTC(),
		ScanRoot:     *root,
		ManifestPath: *manifestPath,
		CSVPath:      *csvPath,
	}

	mdFile, err := os.Create(*reportPath)
	if err != nil {
		logger.Error("create report file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := report.WriteMarkdown(mdFile, meta, rows, unresolved); err != nil {
		mdFile.Close()
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := mdFile.Close(); err != nil {
		logger.Error("close report file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("reports written",
		slog.String("csv", *csvPath),
		slog.String("report", *reportPath))
}
