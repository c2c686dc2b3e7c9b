package handmenu

// HandRadialLayer is a sibling group of radial elements. Layers form a tree;
// each slice of the ring is one element, Back edges lead to the parent.
type HandRadialLayer struct {
	name   string
	parent string

	items      []HandRadial
	startAngle float32
	backAngle  float32

	// displayItem decorates the slice that represents this layer inside its
	// parent (icon, alternate label). Optional.
	displayItem *HandMenuItem
}

// NewLayer builds a layer. backAngle is derived from the first Back item: the
// Back slice center lands at (index + 0.5) * (360 / N). The root layer has no
// Back item and a backAngle of 0.
func NewLayer(name string, startAngle float32, items ...HandRadial) *HandRadialLayer {
	l := &HandRadialLayer{name: name, startAngle: startAngle, items: items}
	l.recalcBackAngle()
	return l
}

// WithDisplayItem sets the decoration used when this layer appears as a slice
// of its parent.
func (l *HandRadialLayer) WithDisplayItem(item *HandMenuItem) *HandRadialLayer {
	l.displayItem = item
	return l
}

func (l *HandRadialLayer) RadialName() string { return l.name }
func (l *HandRadialLayer) radial()            {}

// Name returns the layer name.
func (l *HandRadialLayer) Name() string { return l.name }

// Parent returns the parent layer's name, empty for the root.
func (l *HandRadialLayer) Parent() string { return l.parent }

// Items returns the ordered elements of the layer.
func (l *HandRadialLayer) Items() []HandRadial { return l.items }

// StartAngle returns the angular origin of slice zero, in degrees.
func (l *HandRadialLayer) StartAngle() float32 { return l.startAngle }

// BackAngle returns the center angle of the Back slice, 0 when there is none.
func (l *HandRadialLayer) BackAngle() float32 { return l.backAngle }

func (l *HandRadialLayer) recalcBackAngle() {
	l.backAngle = 0
	n := len(l.items)
	if n == 0 {
		return
	}
	for i, el := range l.items {
		if item, ok := el.(*HandMenuItem); ok && item.Action.Kind == ActionBack {
			l.backAngle = (float32(i) + 0.5) * (360 / float32(n))
			return
		}
	}
}

// AddItem appends a leaf item.
func (l *HandRadialLayer) AddItem(item *HandMenuItem) {
	l.items = append(l.items, item)
	l.recalcBackAngle()
}

// RemoveItem removes the first leaf with the given name and reports whether
// a match was found.
func (l *HandRadialLayer) RemoveItem(name string) bool {
	for i, el := range l.items {
		if _, ok := el.(*HandMenuItem); ok && el.RadialName() == name {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.recalcBackAngle()
			return true
		}
	}
	return false
}

// AddChild appends a nested layer and records this layer as its parent.
func (l *HandRadialLayer) AddChild(child *HandRadialLayer) {
	child.parent = l.name
	l.items = append(l.items, child)
	l.recalcBackAngle()
}

// RemoveChild removes the first child layer with the given name and reports
// whether a match was found.
func (l *HandRadialLayer) RemoveChild(name string) bool {
	for i, el := range l.items {
		if _, ok := el.(*HandRadialLayer); ok && el.RadialName() == name {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.recalcBackAngle()
			return true
		}
	}
	return false
}

// FindChild searches the subtree for a layer with the given name.
func (l *HandRadialLayer) FindChild(name string) *HandRadialLayer {
	for _, el := range l.items {
		child, ok := el.(*HandRadialLayer)
		if !ok {
			continue
		}
		if child.name == name {
			return child
		}
		if found := child.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// FindItem returns the leaf with the given name in this layer only.
func (l *HandRadialLayer) FindItem(name string) *HandMenuItem {
	for _, el := range l.items {
		if item, ok := el.(*HandMenuItem); ok && item.Name == name {
			return item
		}
	}
	return nil
}
