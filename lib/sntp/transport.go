package sntp

import (
	"net"
	"strings"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// transport is the UDP association for a single exchange. It is opened, used
// for exactly one send and one receive, and closed.
type transport struct {
	conn *net.UDPConn
}

// resolveServerAddr appends NTP_DEFAULT_PORT when the address carries no
// port, then resolves it to a UDP address.
func resolveServerAddr(server string) (*net.UDPAddr, error) {
	if !strings.Contains(server, ":") {
		server = net.JoinHostPort(server, NTP_DEFAULT_PORT)
	}
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		log.WithError(err).WithField("server", server).Error("failed to resolve sntp server address")
		return nil, oops.Wrapf(ERR_BAD_SERVER_ADDRESS, "resolving %q: %v", server, err)
	}
	return addr, nil
}

// openTransport binds an ephemeral local UDP port and associates it with the
// resolved server address.
func openTransport(server string) (*transport, error) {
	addr, err := resolveServerAddr(server)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		log.WithError(err).WithField("server", addr.String()).Error("failed to open udp association")
		return nil, oops.Wrapf(ERR_SERVICE_UNAVAILABLE, "opening udp association with %s: %v", addr, err)
	}
	log.WithFields(logger.Fields{
		"at":     "sntp.openTransport",
		"local":  conn.LocalAddr().String(),
		"remote": addr.String(),
	}).Debug("opened sntp transport")
	return &transport{conn: conn}, nil
}

// send issues the single request datagram, bounded by queryTimeout.
func (t *transport) send(data []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(queryTimeout)); err != nil {
		return oops.Wrapf(ERR_UNEXPECTED, "configuring send timeout: %v", err)
	}
	if _, err := t.conn.Write(data); err != nil {
		log.WithError(err).Error("failed to send sntp request")
		return oops.Wrapf(ERR_SERVICE_UNAVAILABLE, "sending sntp request: %v", err)
	}
	return nil
}

// receive blocks until one datagram arrives or queryTimeout elapses. It
// returns the byte count actually read; the caller truncates its buffer to
// that length before decoding.
func (t *transport) receive(buf []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(queryTimeout)); err != nil {
		return 0, oops.Wrapf(ERR_UNEXPECTED, "configuring receive timeout: %v", err)
	}
	n, err := t.conn.Read(buf)
	if err != nil {
		log.WithError(err).Error("failed to receive sntp response")
		return 0, oops.Wrapf(ERR_SERVICE_UNAVAILABLE, "receiving sntp response: %v", err)
	}
	return n, nil
}

// close releases the socket. Called on every exit path of an exchange.
func (t *transport) close() {
	if err := t.conn.Close(); err != nil {
		log.WithError(err).Warn("failed to close sntp transport")
	}
}
