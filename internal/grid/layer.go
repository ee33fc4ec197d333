package grid

const (
	DefaultLayerID   = "1"
	DefaultLayerName = "Layer 1"
)

// Layer groups objects for visibility. Layers do not affect stacking order.
type Layer struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Visible bool   `json:"visible" yaml:"visible"`
}

func DefaultLayers() []Layer {
	return []Layer{{ID: DefaultLayerID, Name: DefaultLayerName, Visible: true}}
}

// VisibleOn keeps the objects whose layer is visible. Objects on layers not
// present in layers are kept.
func (c Collection) VisibleOn(layers []Layer) Collection {
	hidden := make(map[string]bool, len(layers))
	for _, l := range layers {
		if !l.Visible {
			hidden[l.ID] = true
		}
	}
	if len(hidden) == 0 {
		return c
	}
	return c.Filter(func(o Object) bool { return !hidden[o.Layer()] })
}

// OnLayer returns the objects belonging to layerID.
func (c Collection) OnLayer(layerID string) Collection {
	return c.Filter(func(o Object) bool { return o.Layer() == layerID })
}
