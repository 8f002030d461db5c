package domain

// Connection is one live client transport. Send must be safe to call from
// any goroutine and must not block the caller.
type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Relay owns session identity and room membership and fans frames out to
// room members. It keeps no drawing state; strokes only pass through.
type Relay interface {
	Register(conn Connection)
	Unregister(conn Connection) (room, name string, ok bool)
	Join(conn Connection, room, name string) (prevRoom, prevName string, switched bool)
	Session(id string) (name, room string, ok bool)
	BroadcastRoom(room string, data []byte, excludeID string)
	Stats() (rooms, clients int)
}

// MessageHandler consumes raw frames from a connection and is told when the
// transport drops.
type MessageHandler interface {
	Handle(conn Connection, data []byte)
	Disconnect(conn Connection)
}
