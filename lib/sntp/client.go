package sntp

import (
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// Exchange records the four instants of one SNTP round trip, each a duration
// since the Unix epoch, plus the decoded server response:
//
//	T1 client transmit, captured just before the network send
//	T2 server receive, decoded from the response
//	T3 server transmit, decoded from the response
//	T4 client receive, captured just after the network receive returns
//
// An Exchange is scoped to a single call and holds no shared state.
type Exchange struct {
	T1, T2, T3, T4 time.Duration

	// Response is the full decoded reply, retained so callers can inspect
	// server metadata (stratum, leap indicator, reference identifier) or
	// apply ValidateResponse.
	Response Packet
}

// UnixTimestamp derives the absolute time at the midpoint of the round trip:
// (t1*2 + t2 + t3 - t1 - t4) / 2. The subtraction order keeps intermediate
// values non-negative when t1 <= t2,t3 <= t4, as in well-behaved exchanges.
func (ex Exchange) UnixTimestamp() time.Duration {
	return (ex.T1*2 + ex.T2 + ex.T3 - ex.T1 - ex.T4) / 2
}

// ClockOffsetNanos derives the signed local-clock offset
// ((t2 - t1) + (t3 - t4)) / 2 in nanoseconds: the amount to add to the local
// clock to match the server. Whole seconds and nanosecond remainders are
// combined separately so the halving loses no precision.
func (ex Exchange) ClockOffsetNanos() int64 {
	seconds := int64(ex.T2/time.Second) - int64(ex.T1/time.Second) +
		int64(ex.T3/time.Second) - int64(ex.T4/time.Second)
	nanos := int64(ex.T2%time.Second) - int64(ex.T1%time.Second) +
		int64(ex.T3%time.Second) - int64(ex.T4%time.Second)
	return seconds*int64(time.Second)/2 + nanos/2
}

// Query performs one complete SNTP exchange with the given server, which may
// carry an explicit ":port" (default 123). The reply is accepted only when
// it is exactly 48 bytes and its originate timestamp echoes the transmit
// timestamp of our request; anything else is a stale, misdirected, or
// spoofed datagram and fails with ERR_UNTRUSTED_MESSAGE.
func Query(server string) (Exchange, error) {
	t, err := openTransport(server)
	if err != nil {
		return Exchange{}, err
	}
	defer t.close()

	validate := DurationToTimestamp(sysTime())
	request := NewClientPacket(validate)
	data, err := request.MarshalBinary()
	if err != nil {
		return Exchange{}, oops.Wrapf(ERR_UNEXPECTED, "encoding sntp request: %v", err)
	}

	var ex Exchange
	ex.T1 = sysTime()
	if err := t.send(data); err != nil {
		return Exchange{}, err
	}

	buf := make([]byte, NTP_PACKET_SIZE)
	n, err := t.receive(buf)
	if err != nil {
		return Exchange{}, err
	}
	ex.T4 = sysTime()

	var response Packet
	if err := response.UnmarshalBinary(buf[:n]); err != nil {
		return Exchange{}, err
	}

	if response.OriginateTimestamp != validate {
		log.WithFields(logger.Fields{
			"at":       "sntp.Query",
			"expected": uint64(validate),
			"received": uint64(response.OriginateTimestamp),
		}).Error("response does not echo our transmit timestamp")
		return Exchange{}, oops.Wrapf(ERR_UNTRUSTED_MESSAGE, "originate timestamp mismatch from %s", server)
	}

	ex.T2 = response.ReceiveTimestamp.Duration()
	ex.T3 = response.TransmitTimestamp.Duration()
	ex.Response = response
	log.WithFields(logger.Fields{
		"at":      "sntp.Query",
		"server":  server,
		"stratum": response.Stratum,
	}).Debug("completed sntp exchange")
	return ex, nil
}

// UnixTimestamp queries the server once and returns the current true time as
// a duration since the Unix epoch, referenced to the round-trip midpoint.
func UnixTimestamp(server string) (time.Duration, error) {
	ex, err := Query(server)
	if err != nil {
		return 0, err
	}
	return ex.UnixTimestamp(), nil
}

// ClockOffsetNanos queries the server once and returns the local clock's
// signed offset from it in nanoseconds.
func ClockOffsetNanos(server string) (int64, error) {
	ex, err := Query(server)
	if err != nil {
		return 0, err
	}
	return ex.ClockOffsetNanos(), nil
}
