package service

type EventType uint8

const (
	EventPut EventType = iota + 1
	EventDelete
)

func (t EventType) String() string {
	switch t {
	case EventPut:
		return "put"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event records one committed mutation. Value is nil for deletes.
type Event struct {
	Seq   uint64
	Type  EventType
	Key   string
	Value []byte
}
