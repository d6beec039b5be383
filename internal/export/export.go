// Package export writes finance reports as CSV, JSON or PDF.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/screens"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	PDF  Format = "pdf"
)

func Formats() []Format {
	return []Format{CSV, JSON, PDF}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (want csv, json or pdf)", s)
}

func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case JSON:
		return "application/json; charset=utf-8"
	case PDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Report is every screen a user can export, captured at one instant.
type Report struct {
	GeneratedAt  time.Time            `json:"generated_at"`
	Currency     string               `json:"currency"`
	Dashboard    screens.Dashboard    `json:"dashboard"`
	Transactions screens.Transactions `json:"transactions"`
	Analytics    screens.Analytics    `json:"analytics"`
	Accounts     screens.Accounts     `json:"accounts"`
}

// Write encodes r to w in format f.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case CSV:
		return WriteCSV(w, r)
	case JSON:
		return WriteJSON(w, r)
	case PDF:
		return WritePDF(w, r)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Filename is base plus the report timestamp, e.g. fintrack_20250615_090000.csv.
func Filename(base string, generatedAt time.Time, f Format) string {
	return fmt.Sprintf("%s_%s.%s", base, generatedAt.Format("20060102_150405"), f)
}

// ToFile writes r into dir (the working directory when empty) and returns
// the absolute path of the new file.
func ToFile(r Report, f Format, dir, base string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, Filename(base, r.GeneratedAt, f))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating %s file: %w", strings.ToUpper(string(f)), err)
	}

	if err := Write(file, r, f); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing %s: %w", path, err)
	}
	return filepath.Abs(path)
}
