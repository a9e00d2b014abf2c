/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikeb26/squashtd/game"
)

// Parser reads game records from a results sheet.
type Parser interface {
	Parse(data []byte) ([]game.Record, error)
}

// Factory picks a parser based on file extension.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}

// ReadFile reads all game records from the sheet at path.
func ReadFile(path string) ([]game.Record, error) {
	parser, err := NewFactory().GetParser(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", path, err)
	}
	recs, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", path, err)
	}

	return recs, nil
}
