package sntp

import "github.com/go-i2p/logger"

// ValidateResponse applies the stricter RFC 4330 sanity checks to a decoded
// response: leap indicator, association mode, protocol version, stratum, and
// non-zero server timestamps. Query itself enforces only the message length
// and the originate-timestamp echo; these checks are an opt-in hardening
// layer for callers that want to reject degraded or non-compliant servers.
func ValidateResponse(response *Packet) bool {
	if !validateLeapAndMode(response) {
		return false
	}
	if !validateVersion(response) {
		return false
	}
	if !validateStratum(response) {
		return false
	}
	if !validateTimestamps(response) {
		return false
	}
	return true
}

// validateLeapAndMode checks that the server's clock is synchronized and the
// reply is marked as a server-mode association.
func validateLeapAndMode(response *Packet) bool {
	if response.LeapIndicator == NTP_LEAP_NOT_IN_SYNC {
		log.WithField("at", "sntp.validateLeapAndMode").Debug("server clock not in sync")
		return false
	}
	if response.Mode != NTP_MODE_SERVER {
		log.WithFields(logger.Fields{
			"at":   "sntp.validateLeapAndMode",
			"mode": response.Mode,
		}).Debug("response is not a server-mode reply")
		return false
	}
	return true
}

// validateVersion accepts SNTP/NTP version 3 or 4 replies.
func validateVersion(response *Packet) bool {
	if response.VersionNumber < 3 || response.VersionNumber > NTP_VERSION_4 {
		log.WithFields(logger.Fields{
			"at":      "sntp.validateVersion",
			"version": response.VersionNumber,
		}).Debug("unsupported protocol version in response")
		return false
	}
	return true
}

// validateStratum rejects kiss-of-death (stratum 0) and unsynchronized
// (stratum > 15) sources.
func validateStratum(response *Packet) bool {
	if response.Stratum == 0 || response.Stratum > NTP_STRATUM_MAX {
		log.WithFields(logger.Fields{
			"at":      "sntp.validateStratum",
			"stratum": response.Stratum,
		}).Debug("response stratum outside usable range")
		return false
	}
	return true
}

// validateTimestamps requires the server-side instants to be present.
func validateTimestamps(response *Packet) bool {
	if response.ReceiveTimestamp == 0 || response.TransmitTimestamp == 0 {
		log.WithField("at", "sntp.validateTimestamps").Debug("response carries zero server timestamps")
		return false
	}
	return true
}
