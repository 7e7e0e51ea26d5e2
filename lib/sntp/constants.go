package sntp

import (
	"errors"
	"time"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

const (
	// NTP_PACKET_SIZE is the fixed length in bytes of every SNTP request
	// and response datagram. Any other length is malformed.
	NTP_PACKET_SIZE = 48

	// NTP_VERSION_4 is the protocol version placed in outgoing requests.
	NTP_VERSION_4 byte = 4

	// Association modes, RFC 4330 section 4.
	NTP_MODE_CLIENT byte = 3
	NTP_MODE_SERVER byte = 4

	// NTP_LEAP_NOT_IN_SYNC is the leap indicator a server reports when its
	// own clock is unsynchronized.
	NTP_LEAP_NOT_IN_SYNC byte = 3

	// NTP_STRATUM_MAX is the highest stratum of a usable time source.
	// Stratum 0 is a kiss-of-death, anything above 15 is unsynchronized.
	NTP_STRATUM_MAX byte = 15

	// NTP_DEFAULT_PORT is appended to server addresses that carry no port.
	NTP_DEFAULT_PORT = "123"
)

// queryTimeout bounds each send and each receive on the exchange socket.
// A variable rather than a constant so loopback tests can shorten it.
var queryTimeout = 5 * time.Second

var (
	ERR_SERVICE_UNAVAILABLE = errors.New("sntp service unavailable")
	ERR_BAD_SERVER_ADDRESS  = errors.New("bad sntp server address")
	ERR_UNEXPECTED          = errors.New("unexpected sntp failure")
	ERR_TRUNCATED_MESSAGE   = errors.New("truncated sntp message")
	ERR_UNTRUSTED_MESSAGE   = errors.New("untrusted sntp message")
)
