package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/eegraph/internal/ctxlog"
	"github.com/vk/eegraph/internal/fsutil"
)

//go:embed builtin.hcl
var builtinManifest []byte

// Builtin returns a fresh catalog of the operations declared in the embedded
// manifest.
func Builtin(ctx context.Context) (*Catalog, error) {
	sigs, err := ParseManifestSource(ctx, builtinManifest, "builtin.hcl")
	if err != nil {
		return nil, err
	}
	return New(sigs...)
}

// Load reads every .hcl manifest and .json wire listing found under paths
// (files or directories) into a single catalog.
func Load(ctx context.Context, paths ...string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	cat, _ := New()

	for _, root := range paths {
		files, err := fsutil.FindFilesByExtension(root, ".hcl", ".json")
		if err != nil {
			logger.Error("Failed to walk catalog path", "path", root, "error", err)
			return nil, err
		}
		if len(files) == 0 {
			logger.Warn("No catalog files found in path", "path", root)
			continue
		}
		logger.Debug("Found catalog files to load", "files", files)

		for _, file := range files {
			sigs, err := loadFile(ctx, file)
			if err != nil {
				return nil, err
			}
			for _, sig := range sigs {
				if err := cat.Add(sig); err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
			}
		}
	}

	logger.Info("Catalog loaded.", "functions", cat.Len())
	return cat, nil
}

func loadFile(ctx context.Context, path string) ([]*Signature, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".json" {
		sigs, err := DecodeJSON(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, sig := range sigs {
			sig.Source = path
		}
		return sigs, nil
	}
	return ParseManifestSource(ctx, src, path)
}
