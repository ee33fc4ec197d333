package canvas

import (
	"fmt"
	"strconv"
	"strings"

	"wireterm/internal/grid"
)

// Layers returns a copy of the layer list.
func (c *Canvas) Layers() []grid.Layer {
	return append([]grid.Layer(nil), c.layers...)
}

// ActiveLayer is the layer new objects are placed on.
func (c *Canvas) ActiveLayer() grid.Layer {
	if i := c.layerIndex(c.active); i >= 0 {
		return c.layers[i]
	}
	return c.layers[0]
}

func (c *Canvas) layerIndex(id string) int {
	for i, l := range c.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// AddLayer appends a visible layer and makes it active. An empty name
// becomes "Layer N".
func (c *Canvas) AddLayer(name string) grid.Layer {
	c.noteLayerIDs()
	c.lastLayer++
	id := strconv.Itoa(c.lastLayer)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Layer " + id
	}
	layer := grid.Layer{ID: id, Name: name, Visible: true}
	c.layers = append(c.layers, layer)
	c.active = id
	c.touch()
	return layer
}

// RenameLayer sets a layer's name. Blank names are ignored.
func (c *Canvas) RenameLayer(id, name string) error {
	i := c.layerIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil
	}
	c.layers[i].Name = name
	c.touch()
	return nil
}

// ToggleLayer flips visibility and reports the new state.
func (c *Canvas) ToggleLayer(id string) (bool, error) {
	i := c.layerIndex(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	c.layers[i].Visible = !c.layers[i].Visible
	c.touch()
	return c.layers[i].Visible, nil
}

func (c *Canvas) SetActiveLayer(id string) error {
	if c.layerIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	c.active = id
	return nil
}

// CycleLayer activates the layer after the active one, wrapping around.
func (c *Canvas) CycleLayer() grid.Layer {
	i := (c.layerIndex(c.active) + 1) % len(c.layers)
	c.active = c.layers[i].ID
	return c.layers[i]
}

// DeleteLayer removes a layer and, as one undoable edit, its objects. The
// last remaining layer cannot be deleted.
func (c *Canvas) DeleteLayer(id string) error {
	i := c.layerIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	if len(c.layers) == 1 {
		return ErrLastLayer
	}
	c.removed[id] = c.layers[i]
	c.layers = append(c.layers[:i:i], c.layers[i+1:]...)
	if c.active == id {
		c.active = c.layers[0].ID
	}
	if len(c.objects.OnLayer(id)) > 0 {
		c.mutate("delete layer", func(cur grid.Collection) grid.Collection {
			return cur.Filter(func(o grid.Object) bool { return o.Layer() != id })
		})
	} else {
		c.touch()
	}
	return nil
}

// noteLayerIDs raises the id counter past every numeric layer id in use,
// including ids still referenced by objects or kept for undo.
func (c *Canvas) noteLayerIDs() {
	note := func(id string) {
		if n, err := strconv.Atoi(id); err == nil && n > c.lastLayer {
			c.lastLayer = n
		}
	}
	for _, l := range c.layers {
		note(l.ID)
	}
	for id := range c.removed {
		note(id)
	}
	for _, o := range c.objects {
		note(o.Layer())
	}
}

// restoreLayers recreates layers that objects refer to but the layer list
// no longer has, as after undoing a layer delete. A deleted layer returns
// as it was; an unknown one comes back visible under a default name.
func (c *Canvas) restoreLayers() {
	for _, o := range c.objects {
		id := o.Layer()
		if c.layerIndex(id) >= 0 {
			continue
		}
		layer, ok := c.removed[id]
		if !ok {
			layer = grid.Layer{ID: id, Name: "Layer " + id, Visible: true}
		}
		delete(c.removed, id)
		c.layers = append(c.layers, layer)
		c.log.Debug("layer restored", "layer", id)
	}
}
