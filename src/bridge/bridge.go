package bridge

import "github.com/roomhub/socket/src/types"

// Bridge relays chat broadcasts between server instances. Room
// membership itself stays instance-local; only messages cross.
type Bridge interface {
	// Publish sends a chat message to all other instances.
	Publish(msg types.ChatMessage) error

	// Start begins listening for messages from other instances.
	Start() error

	// Stop shuts down the bridge connection.
	Stop() error

	// Available reports whether the bridge is connected and operational.
	Available() bool
}

// BroadcastTarget is implemented by the Hub to receive relayed messages.
type BroadcastTarget interface {
	DeliverLocal(msg types.ChatMessage)
}
