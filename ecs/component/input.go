package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64
	// Slow is held while the slow modifier is down.
	Slow bool
	// DashPressed is only true on the frame the dash button went down.
	DashPressed bool
}

var InputComponent = NewComponent[Input]("input")
