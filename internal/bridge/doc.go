// Package bridge owns the TCP relay between device clients and a hub.
//
// Ownership boundary:
// - port registration lifecycle over EXT_SRV commands
// - length-prefixed message framing on the wire
// - HTTP status and metrics surface
package bridge
