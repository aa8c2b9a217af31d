// Command docsense analyzes a single document from the command line and
// writes the full result as JSON next to the input file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsense/docsense/internal/analyzer"
	"github.com/docsense/docsense/internal/ingest"
	"github.com/docsense/docsense/internal/vocab"
)

func main() {
	outPath := flag.String("out", "", "output JSON path (default: <input>_analysis.json)")
	vocabPath := flag.String("vocab", "", "optional vocabulary YAML overriding the built-in tables")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	if err := run(inputPath, *outPath, *vocabPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(inputPath, outPath, vocabPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	v := vocab.Default()
	if vocabPath != "" {
		if v, err = vocab.Load(vocabPath); err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
	}

	text, encodingName := ingest.Decode(data)

	filename := filepath.Base(inputPath)
	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".html" || ext == ".htm" {
		if text, err = ingest.StripHTML(text); err != nil {
			return fmt.Errorf("strip html: %w", err)
		}
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".txt"
	}

	result, err := analyzer.New(v).Analyze(text, filename)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_analysis.json"
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	printSummary(result, encodingName, outPath)
	return nil
}

func printSummary(result *analyzer.Result, encodingName, outPath string) {
	fmt.Printf("file: %s (%s, %s)\n", result.FileInfo.Filename, result.FileInfo.Format, encodingName)
	fmt.Printf("content units: %d\n", result.ContentUnits)

	fmt.Println("\nkey elements:")
	for _, elementType := range []string{
		"financial_indicator", "kpi_metric", "tactical_term", "data_point", "time_reference",
	} {
		fmt.Printf("  %-20s %d\n", elementType, result.KeyElements[elementType])
	}

	fmt.Printf("\nstructure type: %s\n", result.Structure.Type)
	if len(result.Structure.CoreArguments) > 0 {
		fmt.Println("core arguments:")
		for i, arg := range result.Structure.CoreArguments {
			fmt.Printf("  %d. %s\n", i+1, arg.Content)
			fmt.Printf("     score %.2f", arg.Score)
			if len(arg.Keywords) > 0 {
				fmt.Printf(", keywords: %s", strings.Join(arg.Keywords, ", "))
			}
			fmt.Println()
		}
	}

	fmt.Printf("\ncompression ratio: %.1f%%\n", result.Compression.CompressionRatio*100)
	fmt.Printf("result written to %s\n", outPath)
}
