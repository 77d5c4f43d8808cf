// Package excel bulk-loads vocabulary pairs into the shared dictionary
// from an Excel or CSV file.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordlearn/internal/database"
)

// ImportConfig defines the import configuration.
type ImportConfig struct {
	FilePath     string // Path to the Excel or CSV file
	TargetColumn int    // 0-based column with the target-language text
	SourceColumn int    // 0-based column with the source-language text
	SheetName    string // Name of the sheet to import
	StartRow     int    // The row to start importing from (1-based)
}

// DefaultImportConfig returns the default import configuration:
// target in column A, source in column B, header row skipped.
func DefaultImportConfig(filePath string) ImportConfig {
	return ImportConfig{
		FilePath:     filePath,
		TargetColumn: 0,
		SourceColumn: 1,
		SheetName:    "Sheet1",
		StartRow:     2,
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportWords imports word pairs from an Excel or CSV file into the
// dictionary. Pairs already present are skipped.
func ImportWords(ctx context.Context, store *database.Store, config ImportConfig) (*ImportResult, error) {
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return importFromCSV(ctx, store, config)
	}
	return importFromExcel(ctx, store, config)
}

func importFromExcel(ctx context.Context, store *database.Store, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, store, config, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func importFromCSV(ctx context.Context, store *database.Store, config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if line < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, store, config, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		}
	}
	return result, nil
}

func processRow(ctx context.Context, store *database.Store, config ImportConfig, row []string, result *ImportResult) error {
	target := cell(row, config.TargetColumn)
	source := cell(row, config.SourceColumn)
	if target == "" || source == "" {
		result.Skipped++
		return nil
	}

	exists, err := store.WordExists(ctx, target, source)
	if err != nil {
		return err
	}
	if exists {
		result.Skipped++
		return nil
	}

	if _, err := store.CreateWord(ctx, target, source); err != nil {
		return err
	}
	result.Created++
	return nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
