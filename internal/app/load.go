package app

import (
	"fmt"
	"os"

	"github.com/vk/eegraph/pkg/ee"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

// LoadGraph reads an encoded graph from path, in either encoding.
func (a *App) LoadGraph(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	graph, err := a.registry.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return graph, nil
}

// Convert re-encodes the graph stored at path in the target encoding.
func (a *App) Convert(path string, to ee.Encoding, pretty bool) (string, error) {
	graph, err := a.LoadGraph(path)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Converting graph.", "path", path, "to", to.String())

	opts := serializer.DefaultOptions()
	switch to {
	case ee.EncodingLegacy:
		return serializer.ToJSON(graph, opts, pretty)
	case ee.EncodingCloud:
		return serializer.ToCloudJSON(graph, opts, pretty)
	}
	return "", fmt.Errorf("unsupported encoding %s", to)
}
