package ee

// ConfusionMatrix is a classification accuracy matrix.
type ConfusionMatrix struct{ *ComputedObject }

// NewConfusionMatrix creates a ConfusionMatrix from a square array and an
// optional list of class values naming its rows. A computed ConfusionMatrix
// without order is returned unchanged.
func (r *Registry) NewConfusionMatrix(array, order any) (ConfusionMatrix, error) {
	if o, ok := array.(Object); ok && order == nil {
		node := o.Node()
		if node != nil && node.typeName == TypeConfusionMatrix {
			return ConfusionMatrix{node}, nil
		}
	}

	fn, err := r.Lookup(TypeConfusionMatrix)
	if err != nil {
		if o, ok := array.(Object); ok && o.Node() != nil && order == nil {
			return ConfusionMatrix{o.Node().cast(TypeConfusionMatrix)}, nil
		}
		return ConfusionMatrix{}, err
	}
	return as[ConfusionMatrix](r.ApplyFunction(fn, map[string]any{"array": array, "order": order}))
}

// Accuracy returns the overall accuracy.
func (m ConfusionMatrix) Accuracy() (Number, error) {
	return as[Number](m.Call("accuracy"))
}

// Kappa returns the Kappa statistic.
func (m ConfusionMatrix) Kappa() (Number, error) {
	return as[Number](m.Call("kappa"))
}
