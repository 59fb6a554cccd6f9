package action

// Action represents input actions the harness understands.
type Action int

const (
	// Hardware button lines
	ButtonJump Action = iota
	ButtonSecondary

	// Harness features
	HarnessPauseToggle
	HarnessSnapshot
	HarnessQuit
)
