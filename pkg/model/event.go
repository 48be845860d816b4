package model

// EventKind identifies the category of a recorded action.
type EventKind string

const (
	KindFile         EventKind = "File"
	KindStartProcess EventKind = "StartProcess"
	KindNetSend      EventKind = "NetSend"
)

// Event is a single line in the action log (JSONL format).
// Field order is the wire order.
type Event struct {
	Type EventKind `json:"type"`
	Time string    `json:"time"`
	PID  uint32    `json:"pid"`
	User *string   `json:"user"`
	Cmd  []string  `json:"cmd"`
	Data any       `json:"data"`
}

// Payload is the kind-specific body of an Event.
type Payload interface {
	Kind() EventKind
}

// FileOp names a file action.
type FileOp string

const (
	FileCreate FileOp = "create"
	FileModify FileOp = "modify"
	FileDelete FileOp = "delete"
)

// FileAction records a file being created, modified or deleted.
type FileAction struct {
	Action FileOp `json:"action"`
	File   string `json:"file"`
}

func (FileAction) Kind() EventKind { return KindFile }

// ProcessStart records a child process being spawned.
type ProcessStart struct {
	Cmd  string   `json:"cmd"`
	Args []string `json:"args"`
	PID  int      `json:"pid"`
}

func (ProcessStart) Kind() EventKind { return KindStartProcess }

// NetSend records data written to a network peer.
type NetSend struct {
	Proto   string `json:"proto"`
	SrcAddr string `json:"src_addr"`
	SrcPort int    `json:"src_port"`
	DstAddr string `json:"dst_addr"`
	DstPort int    `json:"dst_port"`
	Bytes   int    `json:"bytes"`
}

func (NetSend) Kind() EventKind { return KindNetSend }
