package facefilter

// Quantizer maps depth samples linearly onto Layers bins spanning [0, DepthMax].
// Depths at or beyond DepthMax all land in the last layer.
type Quantizer struct {
	Layers   int
	DepthMax int
}

// DepthToLayer returns the layer holding depth.
func (q Quantizer) DepthToLayer(depth int) int {
	if depth >= q.DepthMax {
		return q.Layers - 1
	}
	return depth * q.Layers / q.DepthMax
}

// LayerToDepth returns the smallest depth belonging to layer, or DepthMax for
// layer == Layers. DepthToLayer(LayerToDepth(l)) == l for every l < Layers.
func (q Quantizer) LayerToDepth(layer int) int {
	if layer >= q.Layers {
		return q.DepthMax
	}
	return (layer*q.DepthMax + q.Layers - 1) / q.Layers
}
