package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/moamenhredeen/conductor/internal/models"
)

// Format represents the output format type
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ExportVerifySummary exports endpoint verification results to the specified format
func ExportVerifySummary(summary models.VerifySummary, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	return WriteVerifySummary(w, summary, format)
}

// WriteVerifySummary writes endpoint verification results to w
func WriteVerifySummary(w io.Writer, summary models.VerifySummary, format Format) error {
	switch format {
	case FormatJSON:
		return exportVerifyJSON(w, summary)
	case FormatCSV:
		return exportVerifyCSV(w, summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

func exportVerifyJSON(w io.Writer, summary models.VerifySummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func exportVerifyCSV(w io.Writer, summary models.VerifySummary) error {
	cw := csv.NewWriter(w)

	header := []string{"command", "method", "path", "found", "operation_id"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range summary.Results {
		row := []string{
			r.Command,
			r.Method,
			r.Path,
			strconv.FormatBool(r.Found),
			r.OperationID,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json' or 'csv'", s)
	}
}
