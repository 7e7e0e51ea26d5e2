package sntp

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleExchange is the worked example from RFC 4330's offset arithmetic:
// t1=1000.0s, t2=1000.5s, t3=1000.6s, t4=1000.2s.
func sampleExchange() Exchange {
	return Exchange{
		T1: 1000 * time.Second,
		T2: 1000*time.Second + 500*time.Millisecond,
		T3: 1000*time.Second + 600*time.Millisecond,
		T4: 1000*time.Second + 200*time.Millisecond,
	}
}

func TestExchangeClockOffsetNanos(t *testing.T) {
	// ((0.5) + (0.6 - 0.2)) / 2 = 0.45 s
	assert.Equal(t, int64(450_000_000), sampleExchange().ClockOffsetNanos())
}

func TestExchangeClockOffsetNanosNegative(t *testing.T) {
	// Local clock ahead of the server: t1/t4 past the server instants.
	ex := Exchange{
		T1: 2000 * time.Second,
		T2: 1999*time.Second + 500*time.Millisecond,
		T3: 1999*time.Second + 600*time.Millisecond,
		T4: 2000*time.Second + 200*time.Millisecond,
	}
	// ((-0.5) + (-0.6)) / 2 = -0.55 s
	assert.Equal(t, int64(-550_000_000), ex.ClockOffsetNanos())
}

func TestExchangeUnixTimestamp(t *testing.T) {
	// (t1 + t2 + t3 - t4) / 2 = 1000.45 s
	assert.Equal(t, 1000*time.Second+450*time.Millisecond, sampleExchange().UnixTimestamp())
}

// startFakeServer runs a loopback UDP server for one test. The handler maps
// each request datagram to a reply; returning nil drops the request.
func startFakeServer(t *testing.T, handler func(req []byte) []byte) string {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 256)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			if reply := handler(buf[:n]); reply != nil {
				conn.WriteToUDP(reply, addr)
			}
		}
	}()
	return conn.LocalAddr().String()
}

// echoHandler behaves like a compliant stratum-2 server: it echoes the
// request's transmit timestamp as the originate timestamp and stamps its own
// receive/transmit instants.
func echoHandler(req []byte) []byte {
	var request Packet
	if err := request.UnmarshalBinary(req); err != nil {
		return nil
	}
	now := DurationToTimestamp(time.Duration(time.Now().UnixNano()))
	response := Packet{
		VersionNumber:      NTP_VERSION_4,
		Mode:               NTP_MODE_SERVER,
		Stratum:            2,
		OriginateTimestamp: request.TransmitTimestamp,
		ReceiveTimestamp:   now,
		TransmitTimestamp:  now,
	}
	data, _ := response.MarshalBinary()
	return data
}

func TestQueryLoopback(t *testing.T) {
	addr := startFakeServer(t, echoHandler)

	ex, err := Query(addr)
	require.NoError(t, err)

	assert.Greater(t, ex.T1, time.Duration(0))
	assert.GreaterOrEqual(t, ex.T4, ex.T1)
	assert.Equal(t, NTP_MODE_SERVER, ex.Response.Mode)
	assert.True(t, ValidateResponse(&ex.Response))

	// Loopback round trip against the same clock: offset stays tiny.
	offset := ex.ClockOffsetNanos()
	if offset < 0 {
		offset = -offset
	}
	assert.Less(t, offset, int64(time.Second))
}

func TestQueryUntrustedMessage(t *testing.T) {
	addr := startFakeServer(t, func(req []byte) []byte {
		var request Packet
		if err := request.UnmarshalBinary(req); err != nil {
			return nil
		}
		response := Packet{
			VersionNumber: NTP_VERSION_4,
			Mode:          NTP_MODE_SERVER,
			Stratum:       2,
			// One tick off the echo: must be rejected.
			OriginateTimestamp: request.TransmitTimestamp + 1,
			ReceiveTimestamp:   request.TransmitTimestamp,
			TransmitTimestamp:  request.TransmitTimestamp,
		}
		data, _ := response.MarshalBinary()
		return data
	})

	_, err := Query(addr)
	require.ErrorIs(t, err, ERR_UNTRUSTED_MESSAGE)
}

func TestQueryTruncatedMessage(t *testing.T) {
	addr := startFakeServer(t, func(req []byte) []byte {
		return echoHandler(req)[:47]
	})

	_, err := Query(addr)
	require.ErrorIs(t, err, ERR_TRUNCATED_MESSAGE)
}

func TestQueryTimeout(t *testing.T) {
	addr := startFakeServer(t, func(req []byte) []byte {
		return nil // never reply
	})

	old := queryTimeout
	queryTimeout = 100 * time.Millisecond
	defer func() { queryTimeout = old }()

	_, err := Query(addr)
	require.ErrorIs(t, err, ERR_SERVICE_UNAVAILABLE)
}

func TestQueryBadServerAddress(t *testing.T) {
	_, err := Query("127.0.0.1:notaport")
	require.ErrorIs(t, err, ERR_BAD_SERVER_ADDRESS)
}

func TestUnixTimestampLoopback(t *testing.T) {
	addr := startFakeServer(t, echoHandler)

	d, err := UnixTimestamp(addr)
	require.NoError(t, err)

	now := time.Duration(time.Now().UnixNano())
	diff := now - d
	if diff < 0 {
		diff = -diff
	}
	assert.Less(t, diff, time.Second)
}

func TestClockOffsetNanosLoopback(t *testing.T) {
	addr := startFakeServer(t, echoHandler)

	offset, err := ClockOffsetNanos(addr)
	require.NoError(t, err)
	if offset < 0 {
		offset = -offset
	}
	assert.Less(t, offset, int64(time.Second))
}
