package domain

// Expiration is the daemon's keep-alive hint for a running model, already
// rendered for display. The daemon may report the literal string "Stopping"
// instead of a timestamp while a model is unloading.
type Expiration struct {
	Local    string
	Relative string
}

// ModelDescriptor is one running model as reported by the daemon's status
// endpoint. Descriptors are ephemeral and carry no identity beyond the name;
// descriptive fields are already formatted for display when the descriptor
// is built.
type ModelDescriptor struct {
	Name          string
	Families      string
	ParameterSize string
	Size          string
	CPUGPUSplit   string
	ExpiresAt     *Expiration
}
