package sntp

/*
SNTP Message Format
https://www.rfc-editor.org/rfc/rfc4330
Accurate for version 4

48 octets, all multi-byte fields big-endian:

+----+----+----+----+----+----+----+----+
|flag|strt|poll|prec|    root delay     |
+----+----+----+----+----+----+----+----+
|  root dispersion  |   reference id    |
+----+----+----+----+----+----+----+----+
|          reference timestamp          |
+----+----+----+----+----+----+----+----+
|          originate timestamp          |
+----+----+----+----+----+----+----+----+
|           receive timestamp           |
+----+----+----+----+----+----+----+----+
|          transmit timestamp           |
+----+----+----+----+----+----+----+----+

flag :: Integer
        length -> 1 byte
        purpose -> leap indicator (2 bits), version number (3 bits),
                   association mode (3 bits)

strt :: Integer
        length -> 1 byte
        purpose -> stratum of the responding server

poll, prec :: Integer
              length -> 1 byte each
              purpose -> poll interval and clock precision, log2 seconds

root delay, root dispersion :: unsigned fixed-point
                               length -> 4 bytes each

reference id :: Integer
                length -> 4 bytes
                purpose -> identifies the server's reference source

reference, originate, receive, transmit timestamps :: Timestamp
        length -> 8 bytes each
        purpose -> originate echoes the request's transmit timestamp,
                   receive and transmit are the server-side instants of
                   one exchange
*/

import (
	"encoding/binary"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// Packet is the in-memory form of one 48-octet SNTP message.
type Packet struct {
	LeapIndicator      byte
	VersionNumber      byte
	Mode               byte
	Stratum            byte
	Poll               byte
	Precision          byte
	RootDelay          uint32
	RootDispersion     uint32
	ReferenceID        uint32
	ReferenceTimestamp Timestamp
	OriginateTimestamp Timestamp
	ReceiveTimestamp   Timestamp
	TransmitTimestamp  Timestamp
}

// NewClientPacket builds the request message for one exchange: version 4,
// client mode, transmit timestamp set, every other field zero.
func NewClientPacket(transmit Timestamp) Packet {
	return Packet{
		VersionNumber:     NTP_VERSION_4,
		Mode:              NTP_MODE_CLIENT,
		TransmitTimestamp: transmit,
	}
}

// MarshalBinary packs the packet into its fixed 48-byte wire form. Encoding
// a well-formed in-memory packet cannot fail; the error return satisfies
// encoding.BinaryMarshaler.
func (p *Packet) MarshalBinary() ([]byte, error) {
	data := make([]byte, NTP_PACKET_SIZE)
	data[0] = p.LeapIndicator<<6 | p.VersionNumber<<3 | p.Mode
	data[1] = p.Stratum
	data[2] = p.Poll
	data[3] = p.Precision
	binary.BigEndian.PutUint32(data[4:8], p.RootDelay)
	binary.BigEndian.PutUint32(data[8:12], p.RootDispersion)
	binary.BigEndian.PutUint32(data[12:16], p.ReferenceID)
	binary.BigEndian.PutUint64(data[16:24], uint64(p.ReferenceTimestamp))
	binary.BigEndian.PutUint64(data[24:32], uint64(p.OriginateTimestamp))
	binary.BigEndian.PutUint64(data[32:40], uint64(p.ReceiveTimestamp))
	binary.BigEndian.PutUint64(data[40:48], uint64(p.TransmitTimestamp))
	return data, nil
}

// UnmarshalBinary parses a buffer of exactly NTP_PACKET_SIZE bytes. It does
// no field validation beyond the length check; whether the response can be
// trusted is decided by the caller against the originate timestamp echo.
func (p *Packet) UnmarshalBinary(data []byte) error {
	if len(data) != NTP_PACKET_SIZE {
		log.WithFields(logger.Fields{
			"at":     "sntp.Packet.UnmarshalBinary",
			"length": len(data),
		}).Error("sntp message is not 48 bytes")
		return oops.Wrapf(ERR_TRUNCATED_MESSAGE, "got %d bytes, need %d", len(data), NTP_PACKET_SIZE)
	}
	p.LeapIndicator = data[0] >> 6
	p.VersionNumber = (data[0] >> 3) & 0x7
	p.Mode = data[0] & 0x7
	p.Stratum = data[1]
	p.Poll = data[2]
	p.Precision = data[3]
	p.RootDelay = binary.BigEndian.Uint32(data[4:8])
	p.RootDispersion = binary.BigEndian.Uint32(data[8:12])
	p.ReferenceID = binary.BigEndian.Uint32(data[12:16])
	p.ReferenceTimestamp = Timestamp(binary.BigEndian.Uint64(data[16:24]))
	p.OriginateTimestamp = Timestamp(binary.BigEndian.Uint64(data[24:32]))
	p.ReceiveTimestamp = Timestamp(binary.BigEndian.Uint64(data[32:40]))
	p.TransmitTimestamp = Timestamp(binary.BigEndian.Uint64(data[40:48]))
	return nil
}
