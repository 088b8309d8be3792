package platform

// Terminator stops a running game process by executable name.
type Terminator interface {
	// Terminate kills every process whose name matches, case-insensitively,
	// and reports whether any match was found.
	Terminate(processName string) (bool, error)
}

// NewTerminator returns a platform-specific process terminator.
func NewTerminator() Terminator {
	return newTerminator()
}
