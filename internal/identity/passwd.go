package identity

import "fmt"

// Scratch buffer sizing for reentrant passwd lookups. There is no portable
// way to ask for the required size (_SC_GETPW_R_SIZE_MAX is absent on the
// BSDs), and nsswitch backends other than files may need more than a typical
// /etc/passwd line, so the buffer grows a few times before giving up.
const (
	InitialBufferSize = 2048
	BufferGrowth      = 2048
	MaxBufferSize     = 8192
)

// Status classifies the outcome of a single passwd lookup attempt.
type Status int

const (
	// Found means the record was populated.
	Found Status = iota
	// BufferTooSmall means the scratch buffer could not hold the entry (ERANGE).
	BufferTooSmall
	// NoEntry means no entry exists for the uid.
	NoEntry
	// Failed is any status the lookup contract does not document.
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case BufferTooSmall:
		return "buffer too small"
	case NoEntry:
		return "no entry"
	default:
		return "failed"
	}
}

// Lookup is the tagged result of one lookup attempt.
type Lookup struct {
	Status Status
	// Name is the pw_name field of a found entry, nil if the field is NULL.
	Name []byte
	// Code is the raw status code returned by the native call.
	Code int
}

// LookupFunc looks up the passwd entry for uid using a scratch buffer of
// size bytes. The buffer must be released before the function returns.
type LookupFunc func(uid uint32, size int) Lookup

// PasswdResolver resolves the process owner through the user database.
type PasswdResolver struct {
	UID    func() uint32
	Lookup LookupFunc
}

// Resolve runs the grow-and-retry loop over Lookup.
//
// It panics when the lookup reports an undocumented status or a name that
// is not valid UTF-8.
func (r *PasswdResolver) Resolve() (string, bool) {
	uid := r.UID()
	size := InitialBufferSize

	for {
		res := r.Lookup(uid, size)
		switch res.Status {
		case Found:
			if res.Name == nil {
				return "", false
			}
			return textName(res.Name), true
		case BufferTooSmall:
			if size >= MaxBufferSize {
				return "", false
			}
			size += BufferGrowth
		case NoEntry:
			return "", false
		default:
			panic(fmt.Sprintf("lyrebird: getpwuid_r returned unexpected value %d", res.Code))
		}
	}
}
