package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// WriteJSON replaces the file at path with v encoded as JSON, creating
// parent directories as needed.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing output file %s: %v", path, cerr)
		}
	}()

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json %s: %w", path, err)
	}

	return nil
}

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("json %s: %w", path, err)
	}
	return nil
}
