package ee

import "github.com/vk/eegraph/pkg/ee/serializer"

// Serialize returns the legacy JSON encoding of v.
func Serialize(v any, pretty bool) (string, error) {
	return serializer.ToJSON(v, serializer.DefaultOptions(), pretty)
}

// EncodeCloudValue returns the optimized cloud encoding of v.
func EncodeCloudValue(v any) (map[string]any, error) {
	return serializer.EncodeCloudValue(v, serializer.DefaultOptions())
}
