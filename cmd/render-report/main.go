// Command render-report строит отчет из JSON файла без HTTP сервера.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/assets"
	"report-service-go/internal/pkg/logger"
	"report-service-go/internal/pkg/pdfgen"
	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/store"
	"report-service-go/internal/pkg/xlsx"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type options struct {
	input    string
	settings string
	out      string
	format   string
	chart    bool
	logLevel string
	timeout  time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("render-report", pflag.ContinueOnError)
	fs.StringVarP(&o.input, "input", "i", "", "report data JSON file (- for stdin)")
	fs.StringVarP(&o.settings, "settings", "s", "", "persisted settings YAML file")
	fs.StringVarP(&o.out, "out", "o", ".", "output directory")
	fs.StringVarP(&o.format, "format", "f", "pdf", "output format: pdf or xlsx")
	fs.BoolVar(&o.chart, "chart", false, "add the dimension chart page to prediction reports")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall render timeout")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.input == "" {
		return options{}, errors.New("--input is required")
	}
	if o.format != "pdf" && o.format != "xlsx" {
		return options{}, fmt.Errorf("unknown format %q", o.format)
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(o.logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path, err := run(o, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func run(o options, stdin io.Reader) (string, error) {
	data, err := readReportData(o.input, stdin)
	if err != nil {
		return "", err
	}

	var persisted *settings.Persisted
	if o.settings != "" {
		if persisted, err = readSettings(o.settings); err != nil {
			return "", err
		}
	}

	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" && o.format == "xlsx" {
		if err := xlsx.SetLicense(key); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	loader := assets.NewLoader(assets.DefaultConfig(), nil, nil, logger.Named("assets"))
	generator := pdfgen.NewGenerator(pdfgen.Config{Compress: true}, loader, logger.Named("pdfgen"))
	service := report.NewService(generator, store.NewMemory(persisted))

	var (
		name    string
		content []byte
	)
	switch o.format {
	case "xlsx":
		name, content, err = service.ExportEvaluations(ctx, data)
	default:
		var doc *pdfgen.Document
		doc, err = service.GenerateReport(ctx, data, report.GenerateOptions{IncludeChart: o.chart})
		if doc != nil {
			name, content = doc.Name, doc.Data
		}
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(o.out, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func readReportData(path string, stdin io.Reader) (*pdfgen.ReportData, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report data: %w", err)
	}

	var data pdfgen.ReportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse report data: %w", err)
	}
	return &data, nil
}

// readSettings читает запись настроек из YAML. Форма та же, что у строки
// таблицы: поля верхнего уровня и вложенный dynamic_content.
func readSettings(path string) (*settings.Persisted, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	// через JSON, чтобы разделение dynamic_content жило в одном месте
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert settings: %w", err)
	}
	var p settings.Persisted
	if err := json.Unmarshal(asJSON, &p); err != nil {
		return nil, fmt.Errorf("failed to convert settings: %w", err)
	}
	return &p, nil
}
