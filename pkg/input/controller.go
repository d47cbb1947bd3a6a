package input

import "github.com/taigrr/facet/pkg/render"

// Action is what a key press asks of the frame loop.
type Action int

const (
	ActionNone Action = iota
	ActionMoveX
	ActionMoveY
	ActionMoveZ
	ActionRotateX
	ActionRotateY
	ActionRotateZ
	ActionReset
	ActionToggleWireframe
	ActionQuit
)

// Binding ties a key to an action. Sign is the direction of the step for
// the move and rotate actions.
type Binding struct {
	Action Action
	Sign   float64
}

// Bindings maps keys to actions.
type Bindings map[Key]Binding

// DefaultBindings returns the reference key layout.
func DefaultBindings() Bindings {
	return Bindings{
		KeyW:      {ActionMoveZ, -1},
		KeyS:      {ActionMoveZ, +1},
		KeyA:      {ActionMoveX, -1},
		KeyD:      {ActionMoveX, +1},
		KeyQ:      {ActionMoveY, -1},
		KeyE:      {ActionMoveY, +1},
		KeyUp:     {ActionRotateX, -1},
		KeyDown:   {ActionRotateX, +1},
		KeyLeft:   {ActionRotateY, -1},
		KeyRight:  {ActionRotateY, +1},
		KeyZ:      {ActionRotateZ, -1},
		KeyX:      {ActionRotateZ, +1},
		KeyR:      {ActionReset, 0},
		KeyF:      {ActionToggleWireframe, 0},
		KeyEscape: {ActionQuit, 0},
	}
}

// Controller applies one fixed step per key-down event to the transform.
type Controller struct {
	Bindings   Bindings
	MoveStep   float64
	RotateStep float64

	// Initial is restored by ActionReset.
	Initial render.Params
}

// NewController creates a controller with the default bindings.
func NewController(initial render.Params, moveStep, rotateStep float64) *Controller {
	return &Controller{
		Bindings:   DefaultBindings(),
		MoveStep:   moveStep,
		RotateStep: rotateStep,
		Initial:    initial,
	}
}

// Apply handles one key-down event. Transform actions mutate p; the
// returned action lets the caller react to the rest. Unbound keys return
// ActionNone and leave p untouched.
func (c *Controller) Apply(p *render.Params, k Key) Action {
	b, ok := c.Bindings[k]
	if !ok {
		return ActionNone
	}

	move := b.Sign * c.MoveStep
	rot := b.Sign * c.RotateStep

	switch b.Action {
	case ActionMoveX:
		p.DX += move
	case ActionMoveY:
		p.DY += move
	case ActionMoveZ:
		p.DZ += move
	case ActionRotateX:
		p.AngleX += rot
	case ActionRotateY:
		p.AngleY += rot
	case ActionRotateZ:
		p.AngleZ += rot
	case ActionReset:
		*p = c.Initial
	}

	return b.Action
}
