// Package handmenu implements a hand-attached hierarchical radial menu: a
// stepper that tracks a hand or controller, opens a ring of pie slices at the
// palm, and navigates a tree of layers by directional finger motion.
package handmenu

import "stepkit/rt"

// ActionKind tags what selecting a menu item does.
type ActionKind uint8

const (
	// ActionCallback runs the item callback and keeps the menu open.
	ActionCallback ActionKind = iota
	// ActionBack pops one layer off the navigation stack.
	ActionBack
	// ActionClose closes the menu.
	ActionClose
	// ActionChecked marks a checked member of a mutually-exclusive group.
	ActionChecked
	// ActionUnchecked marks an unchecked member of a mutually-exclusive group.
	ActionUnchecked
)

// ItemAction is an item's action tag. Checked/Unchecked carry the group label;
// a solo group member behaves as a toggle, several behave as radio buttons.
type ItemAction struct {
	Kind  ActionKind
	Group uint8
}

func Callback() ItemAction { return ItemAction{Kind: ActionCallback} }
func Back() ItemAction     { return ItemAction{Kind: ActionBack} }
func Close() ItemAction    { return ItemAction{Kind: ActionClose} }

func Checked(group uint8) ItemAction   { return ItemAction{Kind: ActionChecked, Group: group} }
func Unchecked(group uint8) ItemAction { return ItemAction{Kind: ActionUnchecked, Group: group} }

// inGroup reports whether the action belongs to checked group g.
func (a ItemAction) inGroup(g uint8) bool {
	return (a.Kind == ActionChecked || a.Kind == ActionUnchecked) && a.Group == g
}

// HandMenuItem is a leaf of the menu tree.
//
// Action is mutated in place for checked groups; the menu does this on the
// main thread during its own step only.
type HandMenuItem struct {
	Name     string
	Material *rt.Material
	Action   ItemAction
	OnSelect func()
}

// NewItem builds a leaf item. Material may be nil for a text-only slice.
func NewItem(name string, mat *rt.Material, onSelect func(), action ItemAction) *HandMenuItem {
	return &HandMenuItem{Name: name, Material: mat, Action: action, OnSelect: onSelect}
}

// HandRadial is one element of a layer: either a leaf (*HandMenuItem) or a
// nested layer (*HandRadialLayer). Elements are shared by pointer so the
// active-layer cursor can reference a sub-tree without copying.
type HandRadial interface {
	RadialName() string
	radial()
}

func (i *HandMenuItem) RadialName() string { return i.Name }
func (i *HandMenuItem) radial()            {}
