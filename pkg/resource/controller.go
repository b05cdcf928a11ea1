package resource

const (
	// DefaultMaxLevel is the resource budget granted on every (re)activation, in seconds
	DefaultMaxLevel float64 = 30.0
	// DefaultMaxOutput is the output level of a full resource
	DefaultMaxOutput float64 = 7.0
)

// MessageKind identifies a replication message sent by a controller.
type MessageKind string

const (
	MessageKindToggleResource MessageKind = "ToggleResource"
)

// OutputSink receives the output level derived from the remaining resource.
// SetOutputLevel is called once per tick and must not block.
type OutputSink interface {
	SetOutputLevel(value float64)
}

// FeedbackHooks receives local-only notifications for toggles
// originated on this peer.
type FeedbackHooks interface {
	OnLocalActivate()
	OnLocalDeactivate()
}

// Broadcaster sends a replication message for an entity to every
// peer except this one. Delivery is best effort and unconfirmed.
type Broadcaster interface {
	Broadcast(entityID uint32, kind MessageKind)
}

// Hooks adapts a pair of callbacks to FeedbackHooks. Nil callbacks are skipped.
type Hooks struct {
	OnActivate   func()
	OnDeactivate func()
}

func (h Hooks) OnLocalActivate() {
	if h.OnActivate != nil {
		h.OnActivate()
	}
}

func (h Hooks) OnLocalDeactivate() {
	if h.OnDeactivate != nil {
		h.OnDeactivate()
	}
}

// Controller owns a perishable resource that depletes while active and
// is refilled on every toggle. A controller is owned by a single entity
// and must only be used from that entity's update loop.
type Controller struct {
	entityID  uint32
	maxLevel  float64
	maxOutput float64

	active    bool
	remaining float64

	sink        OutputSink
	hooks       FeedbackHooks
	broadcaster Broadcaster
}

// NewControllerOptions contains options for creating a new Controller.
// Zero MaxLevel and MaxOutput fall back to the defaults, and any of the
// collaborators may be nil. An absent collaborator must be an untyped nil:
// a nil pointer wrapped in the interface is called and panics.
type NewControllerOptions struct {
	EntityID    uint32
	MaxLevel    float64
	MaxOutput   float64
	Sink        OutputSink
	Hooks       FeedbackHooks
	Broadcaster Broadcaster
}

// NewController creates an inactive controller with a full resource.
func NewController(opts NewControllerOptions) *Controller {
	maxLevel := opts.MaxLevel
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}
	maxOutput := opts.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	return &Controller{
		entityID:    opts.EntityID,
		maxLevel:    maxLevel,
		maxOutput:   maxOutput,
		remaining:   maxLevel,
		sink:        opts.Sink,
		hooks:       opts.Hooks,
		broadcaster: opts.Broadcaster,
	}
}

func (c *Controller) EntityID() uint32 {
	return c.entityID
}

func (c *Controller) Active() bool {
	return c.active
}

func (c *Controller) Remaining() float64 {
	return c.remaining
}

func (c *Controller) MaxLevel() float64 {
	return c.maxLevel
}

func (c *Controller) MaxOutput() float64 {
	return c.maxOutput
}

// Output returns the output level for the current state.
// It is zero whenever the controller is inactive.
func (c *Controller) Output() float64 {
	if !c.active {
		return 0
	}
	return c.maxOutput * (c.remaining / c.maxLevel)
}

// SetSink replaces the output sink. A nil sink disables output pushes.
func (c *Controller) SetSink(sink OutputSink) {
	c.sink = sink
}

// Activate turns the resource on with a full budget, even if it is already on.
func (c *Controller) Activate() {
	c.active = true
	c.remaining = c.maxLevel
}

// Deactivate turns the resource off and leaves the remaining level as is.
func (c *Controller) Deactivate() {
	c.active = false
}

// Toggle flips the resource on this peer, refills it and replicates
// the toggle to the other peers.
func (c *Controller) Toggle() {
	if c.hooks != nil {
		if !c.active {
			c.hooks.OnLocalActivate()
		} else {
			c.hooks.OnLocalDeactivate()
		}
	}

	c.flip()

	if c.broadcaster != nil {
		c.broadcaster.Broadcast(c.entityID, MessageKindToggleResource)
	}
}

// OnReplicatedToggle applies a toggle received from another peer.
// It never broadcasts and never fires the local feedback hooks.
// Duplicated deliveries are applied as separate flips.
func (c *Controller) OnReplicatedToggle() {
	c.flip()
}

// Restore overwrites the state with a snapshot taken on another peer.
func (c *Controller) Restore(active bool, remaining float64) {
	c.active = active
	c.remaining = c.clamp(remaining)
}

// Tick advances the resource by deltaTime seconds and pushes the
// resulting output to the sink.
func (c *Controller) Tick(deltaTime float64) {
	if c.active {
		c.remaining = c.clamp(c.remaining - deltaTime)
	}

	if c.sink == nil {
		return
	}
	c.sink.SetOutputLevel(c.Output())
}

func (c *Controller) flip() {
	c.active = !c.active
	c.remaining = c.maxLevel
}

func (c *Controller) clamp(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > c.maxLevel {
		return c.maxLevel
	}
	return level
}
