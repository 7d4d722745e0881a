// Package main provides the billgen CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/worksbill/billgen-go/pkg/billgen"
	"github.com/worksbill/billgen-go/pkg/billgen/batch"
	"github.com/worksbill/billgen-go/pkg/billgen/config"
	"github.com/worksbill/billgen-go/pkg/billgen/logging"
	"github.com/worksbill/billgen-go/pkg/billgen/models"
	"github.com/worksbill/billgen-go/pkg/billgen/notes"
	"github.com/worksbill/billgen-go/pkg/billgen/scrutiny"
	"github.com/worksbill/billgen-go/pkg/billgen/server"
)

const version = "0.1.0"

var (
	configPath string
	outputPath string
	htmlOutput bool
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "billgen",
		Short: "Generate contract billing documents from workbooks",
		Long: `billgen reads an input workbook (Title, Work Order, Bill Quantity,
Extra Items sheets) and produces the billing document set: first page
abstract, deviation statement, extra items statement, memorandum of
payment and note sheet.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	generateCmd := &cobra.Command{
		Use:   "generate [input.xlsx]",
		Short: "Generate the bill workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: <input>_bill.xlsx)")

	notesheetCmd := &cobra.Command{
		Use:   "notesheet [input.xlsx]",
		Short: "Render the note sheet as HTML",
		Args:  cobra.ExactArgs(1),
		RunE:  runNoteSheet,
	}
	notesheetCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output HTML path (default: stdout)")

	scrutinyCmd := &cobra.Command{
		Use:   "scrutiny [input.xlsx]",
		Short: "Run compliance checks on the bill",
		Long: `Run scrutiny checks on the input workbook and report findings.
Exits non-zero when a blocking (error severity) finding is present.`,
		Args: cobra.ExactArgs(1),
		RunE: runScrutiny,
	}
	scrutinyCmd.Flags().BoolVar(&htmlOutput, "html", false, "Emit an HTML report instead of text")
	scrutinyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: stdout)")

	batchCmd := &cobra.Command{
		Use:   "batch [input-dir]",
		Short: "Generate bills for every workbook in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory (default: alongside inputs)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Worker count (default: from config)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload UI and generation API",
		RunE:  runServe,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the billgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("billgen " + version)
		},
	}

	rootCmd.AddCommand(generateCmd, notesheetCmd, scrutinyCmd, batchCmd, serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inputPath := args[0]
	out := outputPath
	if out == "" {
		out = defaultOutputPath(inputPath)
	}

	result, err := billgen.Generate(inputPath, out, cfg.BillOptions())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("%s written for %s\n", result.OutputPath, result.Bill.Title.BillType())
	fmt.Printf("Gross payable: %.2f  Net payable: %.2f\n",
		result.Summary.GrossPayable, result.Summary.NetPayable)
	return nil
}

func runNoteSheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bill, err := billgen.Load(args[0])
	if err != nil {
		return err
	}

	opts := cfg.BillOptions()
	sum := billgen.Summarize(bill, opts)
	billNotes := notes.ForBill(bill, sum, notes.Options{
		DeviationLimitPercent: opts.DeviationLimitPercent,
	})

	w, closeFn, err := outputWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	return notes.RenderHTML(w, bill.Title, billNotes)
}

func runScrutiny(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bill, err := billgen.Load(args[0])
	if err != nil {
		return err
	}

	opts := cfg.BillOptions()
	sum := billgen.Summarize(bill, opts)
	scrOpts := scrutiny.DefaultOptions()
	scrOpts.DeviationLimitPercent = opts.DeviationLimitPercent
	findings := scrutiny.Check(bill, sum, scrOpts)

	w, closeFn, err := outputWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	if htmlOutput {
		if err := scrutiny.RenderHTML(w, bill.Title, findings); err != nil {
			return err
		}
	} else {
		for _, f := range findings {
			fmt.Fprintf(w, "[%s] %s: %s\n", strings.ToUpper(string(f.Severity)), f.Code, f.Message)
		}
	}

	if scrutiny.HasBlocking(findings) {
		return fmt.Errorf("scrutiny found blocking defects")
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputDir := args[0]
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	var jobs []batch.Job
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			continue
		}
		if strings.HasSuffix(name, "_bill.xlsx") {
			continue
		}
		input := filepath.Join(inputDir, name)
		output := defaultOutputPath(input)
		if outputPath != "" {
			output = filepath.Join(outputPath, filepath.Base(output))
		}
		jobs = append(jobs, batch.NewJob(input, output))
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no input workbooks in %s", inputDir)
	}
	if outputPath != "" {
		if err := os.MkdirAll(outputPath, 0755); err != nil {
			return err
		}
	}

	poolWorkers := cfg.Batch.Workers
	if workers > 0 {
		poolWorkers = workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := batch.NewPool(poolWorkers, logger)
	results := pool.Process(ctx, jobs, func(ctx context.Context, job batch.Job) (*models.Summary, error) {
		result, err := billgen.Generate(job.InputPath, job.OutputPath, cfg.BillOptions())
		if err != nil {
			return nil, err
		}
		return &result.Summary, nil
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s (%s): %v\n", r.Job.InputPath, r.Category, r.Err)
			continue
		}
		fmt.Printf("OK   %s -> %s (net %.2f)\n", r.Job.InputPath, r.Job.OutputPath, r.Summary.NetPayable)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workbooks failed", failed, len(results))
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_bill" + ext
}

func outputWriter() (*os.File, func(), error) {
	if outputPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
