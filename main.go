package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/statement-extractor/internal/analysis"
	"github.com/insightdelivered/statement-extractor/internal/api"
	"github.com/insightdelivered/statement-extractor/internal/config"
	"github.com/insightdelivered/statement-extractor/internal/extractor"
	"github.com/insightdelivered/statement-extractor/internal/parser"
	"github.com/insightdelivered/statement-extractor/internal/store"
	"github.com/insightdelivered/statement-extractor/internal/writer"
	"github.com/insightdelivered/statement-extractor/pkg/logger"
)

const version = "1.0.0"

const pageBreakSeparator = "\n---PAGE_BREAK---\n"

func main() {
	bankFlag := flag.String("bank", "", "Statement variant: hdfc, kotak, icici (auto-detected if omitted)")
	stageFlag := flag.String("stage", "csv", "Pipeline stage to emit: clean, simplify, categorize, or csv")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with a new extension)")
	headerFlag := flag.Bool("header", true, "Include account metadata header rows in CSV output")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement OCR Extractor
by Insight Delivered

Turns OCR'd bank statement text from HDFC, Kotak Mahindra, and ICICI
into categorized transactions.

Usage:
  statement-extractor [flags] <input.pdf|input.txt> [input2 ...]
  statement-extractor -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect the bank and write a CSV next to the input
  statement-extractor statement.pdf

  # Emit an intermediate pipeline stage for a pre-extracted text file
  statement-extractor -bank=hdfc -stage=simplify statement.txt

  # Categorized pipe-delimited output
  statement-extractor -bank=kotak -stage=categorize statement.txt

Supported variants:
  hdfc      - HDFC Bank (DD/MM/YY, balance-inferred direction)
  kotak     - Kotak Mahindra Bank (DD-MM-YYYY, explicit Cr/Dr markers)
  icici     - ICICI Bank (DD/MM/YYYY, withdrawal/deposit columns)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-extractor v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *bankFlag, *stageFlag, *outputFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath, bankCode, stage, outputPath string, includeHeader bool) error {
	pages, err := loadPages(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Processing: %s (%d page(s))\n", inputPath, len(pages))

	if bankCode == "" {
		detected, err := parser.AutoDetect(pages)
		if err != nil {
			return fmt.Errorf("could not auto-detect the statement variant; pass -bank: %w", err)
		}
		bankCode = string(detected)
		fmt.Printf("  Auto-detected variant: %s\n", bankCode)
	}

	p, err := parser.New(bankCode)
	if err != nil {
		return err
	}
	fmt.Printf("  Using %s parser\n", p.BankName())

	raw := strings.Join(pages, "\n")

	switch strings.ToLower(stage) {
	case "clean":
		out, err := p.Clean(raw)
		if err != nil {
			return err
		}
		return emit(inputPath, outputPath, ".clean.txt", out)
	case "simplify":
		out, err := p.Simplify(raw)
		if err != nil {
			return err
		}
		return emit(inputPath, outputPath, ".simplified.txt", out)
	case "categorize":
		simplified, err := p.Simplify(raw)
		if err != nil {
			return err
		}
		out, err := p.Categorize(simplified)
		if err != nil {
			return err
		}
		return emit(inputPath, outputPath, ".categorized.txt", out)
	case "csv":
		st, err := p.Parse(pages)
		if err != nil {
			return err
		}
		fmt.Printf("  Found %d transaction(s), dropped %d record(s)\n",
			len(st.Transactions), st.Stats.RecordsDropped)
		if len(st.Transactions) == 0 {
			fmt.Println("  Warning: no transactions found; the layout may not match the selected variant.")
		}

		outPath := outputPath
		if outPath == "" {
			outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
		}
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, st); err != nil {
			return err
		}
		fmt.Printf("  Output: %s\n", outPath)
		return nil
	default:
		return fmt.Errorf("unknown stage %q: use clean, simplify, categorize, or csv", stage)
	}
}

// loadPages reads input as extracted text (.txt, split on page-break
// markers) or as a PDF handed to the extraction chain.
func loadPages(inputPath string) ([]string, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, err
		}
		var pages []string
		for _, page := range strings.Split(string(data), pageBreakSeparator) {
			if strings.TrimSpace(page) != "" {
				pages = append(pages, page)
			}
		}
		return pages, nil
	case ".pdf":
		return extractor.ExtractText(inputPath)
	default:
		return nil, fmt.Errorf("expected a .pdf or .txt file, got %q", filepath.Ext(inputPath))
	}
}

func emit(inputPath, outputPath, suffix, content string) error {
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + suffix
	}
	if outputPath == "-" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(content+"\n"), 0o644); err != nil {
		return err
	}
	fmt.Printf("  Output: %s\n", outputPath)
	return nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)

	maxAge, err := time.ParseDuration(cfg.StoreMaxAge)
	if err != nil {
		maxAge = 15 * time.Minute
	}

	handler := &api.Handler{
		Store:            store.NewMemory(nil, maxAge),
		Narrator:         &analysis.GenAINarrator{Model: cfg.NarrativeModel},
		Log:              logger.WithComponent(log, "api"),
		StaticDir:        cfg.StaticDir,
		IncludeCSVHeader: cfg.IncludeCSVHeader,
	}

	app := fiber.New(fiber.Config{
		AppName:   "statement-extractor v" + version,
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	handler.Register(app)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.WithComponent(log, "server").WithField("addr", addr).Info("listening")
	return app.Listen(addr)
}
