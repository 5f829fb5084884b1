package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bigdbm/extractreg/internal/log"
)

const defaultConfigHeader = "# extractreg configuration\n" +
	"# Keys can be overridden with EXTRACTREG_<SECTION>_<KEY> environment variables.\n\n"

// sectionComments documents the top-level keys in the written default file.
var sectionComments = map[string]string{
	"product_base": "Product name whose storage root holds extract type records",
	"store":        "Record storage: backend is \"parquet\" or \"sqlite\"",
	"layouts":      "Layout catalog: backend is filesystem, sqlite, postgres, mysql or mongodb",
	"tracing":      "OpenTelemetry tracing: exporter is none, file, stdout or otlp",
	"log":          "Debug log file, written only when debug is true",
}

// RenderDefaultConfig returns Defaults() as commented YAML.
func RenderDefaultConfig() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(Defaults()); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	if doc.Kind == yaml.MappingNode {
		for i := 0; i < len(doc.Content)-1; i += 2 {
			key := doc.Content[i]
			if c, ok := sectionComments[key.Value]; ok {
				key.HeadComment = c
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(defaultConfigHeader)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	data, err := RenderDefaultConfig()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(configPath, data); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return err
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// writeFileAtomic writes to a temp file in the target directory, then renames it.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".extractreg.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(0o600); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
