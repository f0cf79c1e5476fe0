package util

// Envelope is the shape of every JSON response body.
type Envelope map[string]any
