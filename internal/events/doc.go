// Package events subscribes to the backend's WebSocket notification stream.
//
// The backend pushes advisory notifications (new checklist tasks, contract
// state changes, expiry reminders) over a single WebSocket per session. This
// package owns the connection lifecycle: bearer-token handshake, ping/pong
// keepalive, and reconnect with exponential backoff. Decoded events are
// delivered on a buffered channel; when the consumer falls behind, events
// are dropped rather than blocking the read loop, since every screen
// refetches its data on demand anyway.
package events
