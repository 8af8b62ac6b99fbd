package ee

import (
	"github.com/vk/eegraph/pkg/catalog"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

// Function is anything a node can invoke.
type Function interface {
	serializer.EncodableFunction
	Signature() *catalog.Signature
}

// ApiFunction is an operation implemented by the service.
type ApiFunction struct {
	sig *catalog.Signature
}

// Signature returns the catalog entry.
func (f *ApiFunction) Signature() *catalog.Signature { return f.sig }

// Name returns the qualified name.
func (f *ApiFunction) Name() string { return f.sig.Name }

func (f *ApiFunction) EncodeInvocation(serializer.Encoder) (any, error) {
	return f.sig.Name, nil
}

func (f *ApiFunction) EncodeCloudInvocation(serializer.CloudEncoder) (map[string]any, error) {
	return map[string]any{serializer.KeyFunctionName: f.sig.Name}, nil
}
