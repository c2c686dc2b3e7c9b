package handmenu

import (
	"stepkit/framework"
	"stepkit/maths"
	"stepkit/rt"
)

// FocusEventKey requests a radial menu to take ("true") or yield ("false")
// focus. The event origin names the target menu. Across menus competing for
// focus, at most one is interactive at a time.
const FocusEventKey = "hand_menu_radial_focus"

// SimulatorKey opens and closes the menu on simulator backends.
const SimulatorKey = rt.KeyF1

const (
	// Selection geometry, radial distance from the menu center in meters.
	minDist float32 = 0.03
	midDist float32 = 0.065
	maxDist float32 = 0.10

	// Hand-facing thresholds, cosine of the angle to the head.
	outOfViewAngle  float32 = 0.866
	activationAngle float32 = 0.978

	// Animation rate for the critically-overdamped pose/scale interpolation.
	animRate float32 = 24

	// Selections only register once the open animation has settled. This
	// also debounces jittery open transitions.
	activationReady float32 = 0.99

	minMenuScale float32 = 0.01
	sliceGap     float32 = 0.002
	onMenuDepth  float32 = 0.02

	// Two identical selections within this window count as one.
	debounceSeconds float64 = 1.5
)

// HandMenuRadial is a stepper that shows a hand-attached radial menu over a
// tree of layers. Create it on any thread; assets load at Initialize on the
// main thread.
type HandMenuRadial struct {
	id   framework.StepperID
	info *framework.Info

	// enabled is the focus-arbitration gate, not the registry's step gate:
	// a dormant menu must keep stepping to see focus events, so this type
	// deliberately does not implement framework.Enabler.
	enabled   bool
	menuStack []framework.StepperID

	root        *HandRadialLayer
	activeLayer *HandRadialLayer
	navStack    []*HandRadialLayer

	active  bool
	hand    rt.Handed
	closing bool

	menuPose    maths.Pose
	destPose    maths.Pose
	activation  float32
	menuScale   float32
	angleOffset float32

	lastSelected   *HandMenuItem
	lastSelectedAt float64

	background     *rt.Mesh
	backgroundEdge *rt.Mesh
	indicator      *rt.Mesh
	icon           *rt.Mesh

	matPlate     *rt.Material
	matChecked   *rt.Material
	matUnchecked *rt.Material

	startDormant bool
}

// NewHandMenuRadial builds the stepper around a menu tree. The root layer
// must hold at least one element.
func NewHandMenuRadial(root *HandRadialLayer) *HandMenuRadial {
	return &HandMenuRadial{
		root:      root,
		menuScale: minMenuScale,
	}
}

// StartDormant registers the menu without focus; it stays inert until a
// focus event targets it. Use when several menus compete for one hand.
func (m *HandMenuRadial) StartDormant() *HandMenuRadial {
	m.startDormant = true
	return m
}

// ID returns the stepper id, empty before initialization.
func (m *HandMenuRadial) ID() framework.StepperID { return m.id }

// IsEnabled reports whether the menu currently holds focus.
func (m *HandMenuRadial) IsEnabled() bool { return m.enabled }

// IsOpen reports whether the menu is showing on a hand.
func (m *HandMenuRadial) IsOpen() bool { return m.active }

// ActiveLayer returns the layer currently shown (the root while closed).
func (m *HandMenuRadial) ActiveLayer() *HandRadialLayer { return m.activeLayer }

// NavDepth returns the size of the Back-navigation stack.
func (m *HandMenuRadial) NavDepth() int { return len(m.navStack) }

// Initialize loads menu assets and validates the tree. Main thread.
func (m *HandMenuRadial) Initialize(id framework.StepperID, info *framework.Info) bool {
	if m.root == nil || len(m.root.Items()) == 0 {
		return false
	}
	m.id = id
	m.info = info
	m.enabled = !m.startDormant
	m.activeLayer = m.root

	assets := info.Runtime().Assets()
	m.matPlate = assets.Material("ui/backplate")
	m.matChecked = assets.Material("ui/radio_on")
	m.matUnchecked = assets.Material("ui/radio_off")

	m.indicator = generateSliceMesh(360, 0.016, 0.02, 0)
	m.icon = iconQuad(0.025)
	m.generateSlices()
	return true
}

// Step samples input and advances the menu state machine.
func (m *HandMenuRadial) Step(token *rt.MainThreadToken) {
	m.processFocusEvents(token)
	if !m.enabled {
		return
	}
	if m.active {
		m.stepMenu(token)
		return
	}
	if m.closing {
		m.stepCloseAnimation(token)
		return
	}
	m.stepIndicator(token, rt.Left)
	if !m.active {
		m.stepIndicator(token, rt.Right)
	}
}

// Shutdown releases nothing: assets are runtime-owned.
func (m *HandMenuRadial) Shutdown() {}

// processFocusEvents applies the focus-arbitration protocol: menus stash the
// id of whoever took focus from them and re-enable when their stash empties.
func (m *HandMenuRadial) processFocusEvents(token *rt.MainThreadToken) {
	for _, ev := range token.EventReport() {
		if ev.Key != FocusEventKey {
			continue
		}
		target := framework.StepperID(ev.Origin)
		take := ev.Value == "true"
		switch {
		case take && target == m.id:
			m.enabled = true
		case take && m.enabled:
			m.menuStack = append(m.menuStack, target)
			m.setEnabled(false)
		case !take && target == m.id:
			m.setEnabled(false)
		case !take:
			m.unstash(target)
		}
	}
}

func (m *HandMenuRadial) setEnabled(enabled bool) {
	if !enabled && m.active {
		m.close()
		m.closing = false
		m.menuScale = minMenuScale
	}
	m.enabled = enabled
}

func (m *HandMenuRadial) unstash(target framework.StepperID) {
	for i := len(m.menuStack) - 1; i >= 0; i-- {
		if m.menuStack[i] == target {
			m.menuStack = append(m.menuStack[:i], m.menuStack[i+1:]...)
			break
		}
	}
	if len(m.menuStack) == 0 && !m.enabled {
		m.enabled = true
	}
}

// stepIndicator draws the open affordance on a closed menu and opens it when
// the hand qualifies.
func (m *HandMenuRadial) stepIndicator(token *rt.MainThreadToken, handed rt.Handed) {
	in := m.info.Runtime().Input()
	hand := in.Hand(handed)
	if !hand.Tracked.IsActive() {
		return
	}

	if m.info.Runtime().Backend() == rt.BackendSimulator {
		if in.Key(SimulatorKey).IsJustActive() {
			m.show(m.trackedPoint(handed), handed)
		}
		return
	}

	if handed == rt.Left && in.ControllerMenuButton().IsJustActive() {
		m.show(hand.IndexTip, handed)
		return
	}

	head := in.Head()
	handDir := hand.Palm.Position.Sub(head.Position).Normalize()
	facing := maths.Dot(head.Forward(), handDir)
	if facing <= outOfViewAngle {
		return
	}
	if maths.Dot(hand.Palm.Forward(), handDir.Scale(-1)) <= 0 {
		return
	}

	t := maths.Clamp01((facing - outOfViewAngle) / (activationAngle - outOfViewAngle))
	tint := rt.ColorDim.Lerp(rt.ColorPrimary, t)
	pose := maths.PoseLookAt(hand.Palm.Position, head.Position)
	draw := m.info.Runtime().Draw()
	draw.Mesh(token, m.indicator, m.matPlate, pose.Matrix(1), tint)
	for i := -1; i <= 1; i++ {
		y := float32(i) * 0.006
		draw.Line(token,
			pose.ToWorld(maths.V3(-0.008, y, 0.001)),
			pose.ToWorld(maths.V3(0.008, y, 0.001)),
			tint, 0.002)
	}

	if facing >= activationAngle && hand.Grip.IsJustActive() {
		m.show(hand.IndexTip, handed)
	}
}

// trackedPoint is the menu's tracking point: the index tip while the hand is
// tracked, the controller aim otherwise.
func (m *HandMenuRadial) trackedPoint(handed rt.Handed) maths.Vec3 {
	in := m.info.Runtime().Input()
	if hand := in.Hand(handed); hand.Tracked.IsActive() {
		return hand.IndexTip
	}
	return in.Controller(handed).Aim.Position
}

// Show opens the menu at a world position on the given hand, closing it
// first when it is already open on the other hand. Ignored while the menu
// is dormant or not yet initialized. Main thread.
func (m *HandMenuRadial) Show(at maths.Vec3, handed rt.Handed) {
	if !m.enabled {
		return
	}
	m.show(at, handed)
}

// Close hides the menu with the closing animation. Main thread.
func (m *HandMenuRadial) Close() { m.close() }

// show opens the menu at a world position on the given hand.
func (m *HandMenuRadial) show(at maths.Vec3, handed rt.Handed) {
	if m.active && m.hand != handed {
		m.close()
	}
	run := m.info.Runtime()
	run.Sound().Click(at)

	head := run.Input().Head()
	m.destPose = maths.PoseLookAt(at, head.Position)
	m.menuPose = m.destPose
	m.activeLayer = m.root
	m.navStack = m.navStack[:0]
	m.angleOffset = 0
	m.activation = 0
	m.menuScale = minMenuScale
	m.active = true
	m.closing = false
	m.hand = handed
	m.generateSlices()
}

// close starts the closing animation and resets navigation to the root.
func (m *HandMenuRadial) close() {
	if !m.active {
		return
	}
	m.info.Runtime().Sound().Unclick(m.menuPose.Position)
	m.active = false
	m.closing = true
	m.navStack = m.navStack[:0]
	m.activeLayer = m.root
	m.angleOffset = 0
	m.generateSlices()
}

func (m *HandMenuRadial) stepCloseAnimation(token *rt.MainThreadToken) {
	t := maths.Min(1, float32(m.info.Runtime().Time().StepUnscaled())*animRate)
	m.activation = maths.LerpF(m.activation, 0, t)
	m.menuScale = maths.LerpF(m.menuScale, minMenuScale, t)
	if m.menuScale <= minMenuScale*2 {
		m.closing = false
		m.menuScale = minMenuScale
		m.activation = 0
		return
	}
	m.drawMenu(token, -1)
}

func (m *HandMenuRadial) stepMenu(token *rt.MainThreadToken) {
	run := m.info.Runtime()
	in := run.Input()

	t := maths.Min(1, float32(run.Time().StepUnscaled())*animRate)
	m.menuPose = maths.PoseLerp(m.menuPose, m.destPose, t)
	m.activation = maths.LerpF(m.activation, 1, t)
	m.menuScale = maths.LerpF(m.menuScale, 1, t)

	tipWorld := m.trackedPoint(m.hand)
	tipLocal := m.destPose.ToLocal(tipWorld)

	magSq := tipLocal.XY().LengthSq()
	onMenu := tipLocal.Z > -onMenuDepth && tipLocal.Z < onMenuDepth
	focusedSlice := onMenu && magSq > minDist*minDist
	selected := onMenu && magSq > midDist*midDist
	cancel := magSq > maxDist*maxDist

	count := len(m.activeLayer.Items())
	if count == 0 {
		// The open layer was mutated empty under us; nothing to select.
		m.close()
		return
	}
	stepAngle := 360 / float32(count)
	fingerAngleAbs := tipLocal.XY().AngleDeg()
	fingerAngle := maths.NormalizeDeg(fingerAngleAbs - (m.activeLayer.StartAngle() + m.angleOffset))
	angleID := int(fingerAngle / stepAngle)
	if angleID >= count {
		angleID = count - 1
	}

	highlight := -1
	if focusedSlice && m.activation >= activationReady {
		highlight = angleID
	}
	m.drawMenu(token, highlight)

	if m.activation < activationReady {
		return
	}

	if selected {
		m.selectElement(angleID, tipWorld, fingerAngleAbs)
		return
	}
	if cancel {
		m.close()
		return
	}
	if run.Backend() == rt.BackendSimulator && in.Key(SimulatorKey).IsJustActive() {
		m.close()
		return
	}
	if in.ControllerMenuButton().IsJustActive() {
		m.close()
	}
}

// drawMenu renders the slice ring, edge, item icons and labels for the
// active layer. highlight is the focused slice index, -1 for none.
func (m *HandMenuRadial) drawMenu(token *rt.MainThreadToken, highlight int) {
	run := m.info.Runtime()
	draw := run.Draw()
	items := m.activeLayer.Items()
	count := len(items)
	if count == 0 {
		return
	}
	stepAngle := 360 / float32(count)
	base := m.menuPose.Matrix(m.menuScale)
	zAxis := maths.V3(0, 0, 1)

	for i := 0; i < count; i++ {
		rot := m.activeLayer.StartAngle() + m.angleOffset + float32(i)*stepAngle
		local := maths.TR(maths.Vec3{}, maths.QuatAngleAxis(zAxis, rot))
		world := base.Mul(local)

		tint := rt.ColorDim
		if i == highlight {
			tint = rt.ColorPrimary
		}
		draw.Mesh(token, m.background, m.matPlate, world, tint)
		draw.Mesh(token, m.backgroundEdge, m.matPlate, world, rt.ColorWhite)

		m.drawElement(token, items[i], rot+stepAngle/2)
	}
}

func (m *HandMenuRadial) drawElement(token *rt.MainThreadToken, el HandRadial, centerDeg float32) {
	draw := m.info.Runtime().Draw()
	rad := centerDeg * maths.DegToRad
	dir := maths.V3(cosf(rad), sinf(rad), 0)

	var item *HandMenuItem
	child := false
	switch v := el.(type) {
	case *HandMenuItem:
		item = v
		child = v.Action.Kind == ActionBack
	case *HandRadialLayer:
		item = v.displayItem
		child = true
	}

	mid := (minDist + maxDist) / 2
	labelAt := dir.Scale(mid)
	base := m.menuPose.Matrix(m.menuScale)

	var mat *rt.Material
	if item != nil {
		mat = item.Material
		switch item.Action.Kind {
		case ActionChecked:
			mat = m.matChecked
		case ActionUnchecked:
			mat = m.matUnchecked
		}
	}
	if mat != nil {
		iconLocal := maths.TR(labelAt.Add(maths.V3(0, 0, 0.001)), maths.QuatIdentity())
		draw.Mesh(token, m.icon, mat, base.Mul(iconLocal), rt.ColorWhite)
		// Push the label outward so it clears the icon.
		labelAt = dir.Scale(mid + 0.025)
	}

	textLocal := maths.TR(labelAt.Add(maths.V3(0, 0, 0.002)), maths.QuatIdentity())
	draw.Text(token, el.RadialName(), base.Mul(textLocal), rt.ColorWhite, rt.AlignCenter)

	if child {
		// Chevron pointing outward marks slices that navigate.
		tipAt := dir.Scale(maxDist * 0.92)
		side := maths.V3(-dir.Y, dir.X, 0).Scale(0.006)
		back := dir.Scale(-0.008)
		p0 := m.menuPose.ToWorld(tipAt.Add(back).Add(side).Scale(m.menuScale))
		p1 := m.menuPose.ToWorld(tipAt.Scale(m.menuScale))
		p2 := m.menuPose.ToWorld(tipAt.Add(back).Sub(side).Scale(m.menuScale))
		draw.Line(token, p0, p1, rt.ColorWhite, 0.0015)
		draw.Line(token, p1, p2, rt.ColorWhite, 0.0015)
	}
}

// selectElement handles a selection in the slice at angleID.
func (m *HandMenuRadial) selectElement(angleID int, tipWorld maths.Vec3, fromAngle float32) {
	el := m.activeLayer.Items()[angleID]

	if layer, ok := el.(*HandRadialLayer); ok {
		m.navStack = append(m.navStack, m.activeLayer)
		m.activeLayer = layer
		m.generateSlices()
		m.reposition(tipWorld, fromAngle)
		m.info.Runtime().Sound().Click(tipWorld)
		return
	}

	item := el.(*HandMenuItem)
	now := m.info.Runtime().Time().TotalUnscaled()
	if item == m.lastSelected && now-m.lastSelectedAt < debounceSeconds {
		return
	}
	m.lastSelected = item
	m.lastSelectedAt = now

	m.applyGroupRule(item)

	switch item.Action.Kind {
	case ActionClose:
		m.close()
	case ActionBack:
		m.navigateBack(tipWorld, fromAngle)
	default:
		if item.OnSelect != nil {
			item.OnSelect()
		}
	}
}

// applyGroupRule implements checked-group semantics: selecting an unchecked
// member unchecks its checked peers and checks itself (radio behavior);
// selecting the checked member of a single-member group toggles it off.
func (m *HandMenuRadial) applyGroupRule(item *HandMenuItem) {
	switch item.Action.Kind {
	case ActionUnchecked:
		g := item.Action.Group
		for _, el := range m.activeLayer.Items() {
			peer, ok := el.(*HandMenuItem)
			if !ok || peer == item {
				continue
			}
			if peer.Action.Kind == ActionChecked && peer.Action.Group == g {
				peer.Action = Unchecked(g)
			}
		}
		item.Action = Checked(g)
	case ActionChecked:
		g := item.Action.Group
		solo := true
		for _, el := range m.activeLayer.Items() {
			peer, ok := el.(*HandMenuItem)
			if !ok || peer == item {
				continue
			}
			if peer.Action.inGroup(g) {
				solo = false
				break
			}
		}
		if solo {
			item.Action = Unchecked(g)
		}
	}
}

func (m *HandMenuRadial) navigateBack(tipWorld maths.Vec3, fromAngle float32) {
	if n := len(m.navStack); n > 0 {
		m.activeLayer = m.navStack[n-1]
		m.navStack = m.navStack[:n-1]
	} else {
		m.activeLayer = m.root
	}
	m.generateSlices()
	m.reposition(tipWorld, fromAngle)
}

// reposition recenters the menu under the tracking point, projected onto the
// menu plane, and rotates the new layer so its Back slice points back along
// the direction the finger came from.
func (m *HandMenuRadial) reposition(at maths.Vec3, fromAngle float32) {
	normal := m.menuPose.Forward()
	offset := at.Sub(m.menuPose.Position)
	m.destPose.Position = at.Sub(normal.Scale(maths.Dot(normal, offset)))
	m.activation = 0

	if back := m.activeLayer.BackAngle(); back != 0 {
		m.angleOffset = maths.NormalizeDeg(fromAngle - back + 180)
	} else {
		m.angleOffset = 0
	}
}

func (m *HandMenuRadial) generateSlices() {
	count := len(m.activeLayer.Items())
	if count == 0 {
		return
	}
	stepAngle := 360 / float32(count)
	m.background = generateSliceMesh(stepAngle, minDist, maxDist, sliceGap)
	m.backgroundEdge = generateSliceMesh(stepAngle, maxDist, maxDist*1.05, sliceGap)
}

// iconQuad is a small centered quad for item icons, normal +Z.
func iconQuad(half float32) *rt.Mesh {
	n := maths.V3(0, 0, 1)
	m := &rt.Mesh{}
	m.SetData(
		[]rt.Vertex{
			{Pos: maths.V3(-half, -half, 0), Normal: n},
			{Pos: maths.V3(half, -half, 0), Normal: n},
			{Pos: maths.V3(half, half, 0), Normal: n},
			{Pos: maths.V3(-half, half, 0), Normal: n},
		},
		[]uint32{0, 1, 2, 0, 2, 3},
	)
	return m
}
