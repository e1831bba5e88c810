// Package catalog seeds the product catalogue from gzipped JSON-lines files
// kept on local disk or in S3.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"crunchy-cruise/internal/model"
)

// Loader reads one catalogue file.
type Loader interface {
	// Load reads a gzipped file of one JSON product per line.
	Load(ctx context.Context, path string) ([]model.ProductRequest, error)
}

// decode reads gzipped JSON lines from r. Blank lines and lines starting
// with '#' are skipped.
func decode(ctx context.Context, r io.Reader) ([]model.ProductRequest, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []model.ProductRequest
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var p model.ProductRequest
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	return products, nil
}
