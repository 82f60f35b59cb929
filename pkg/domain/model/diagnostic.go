package model

// DiagnosticKind represents the type of a non-fatal bundling event
type DiagnosticKind string

const (
	// DiagTextureUnresolved is emitted when an extracted filename has no entry in the textures map
	DiagTextureUnresolved DiagnosticKind = "texture_unresolved"
	// DiagTextureFetchFailed is emitted when a resolved texture could not be retrieved
	DiagTextureFetchFailed DiagnosticKind = "texture_fetch_failed"
)

// Diagnostic is a non-fatal event collected during a bundling operation
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Filename string         `json:"filename"`
	URL      string         `json:"url,omitempty"`
	Message  string         `json:"message,omitempty"`
}
