// Package action performs the simulated behaviors and records each one.
//
// Every handler performs its OS-level effect first and records it after.
// A recording failure does not undo the effect.
package action

import "github.com/RomanHargrave/lyrebird/pkg/model"

// Recorder appends one action record. *actionlog.Log implements it.
type Recorder interface {
	Record(p model.Payload) error
}

// Defaults used when the configuration supplies nothing.
const (
	DefaultFileContent = "Hello from Lyrebird!\n"
	DefaultMessage     = "Ping from Lyrebird!"
)
