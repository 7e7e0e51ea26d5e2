// Package sntp implements a minimal Simple Network Time Protocol client
// (RFC 4330). Each call performs exactly one UDP round trip with a single
// server: build and send a 48-byte client request, block for the 48-byte
// reply, verify that the reply echoes the request's transmit timestamp, and
// derive either the server-referenced absolute time or the local clock's
// offset from the four exchange instants t1..t4.
//
// There is no polling loop, no multi-server selection, and no state kept
// between calls. Every query opens its own ephemeral UDP socket, so
// concurrent callers do not interfere with each other.
package sntp
