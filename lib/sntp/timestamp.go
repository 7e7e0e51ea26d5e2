package sntp

import "time"

// unixEraOffset is the number of seconds between the NTP epoch
// (1900-01-01T00:00:00Z) and the Unix epoch (1970-01-01T00:00:00Z).
const unixEraOffset = 2_208_988_800

// Timestamp is a 64-bit NTP timestamp: the high 32 bits count seconds since
// the NTP epoch, the low 32 bits are a fraction of a second scaled by 2^32.
//
// https://www.rfc-editor.org/rfc/rfc4330#section-3
type Timestamp uint64

// DurationToTimestamp converts a duration since the Unix epoch into NTP
// timestamp form.
func DurationToTimestamp(d time.Duration) Timestamp {
	seconds := uint64(d/time.Second) + unixEraOffset
	nanos := uint64(d % time.Second)
	return Timestamp(seconds<<32 | nanos<<32/uint64(time.Second))
}

// Duration converts the timestamp back into a duration since the Unix epoch.
// The fraction resolves to whole nanoseconds, rounding toward zero.
func (t Timestamp) Duration() time.Duration {
	seconds := uint64(t>>32) - unixEraOffset
	nanos := (uint64(t) & 0xffffffff) * uint64(time.Second) >> 32
	return time.Duration(seconds)*time.Second + time.Duration(nanos)
}

// nowFunc is overridable for testing. Defaults to time.Now.
var nowFunc = time.Now

// sysTime returns the local clock as a duration since the Unix epoch.
func sysTime() time.Duration {
	return time.Duration(nowFunc().UnixNano())
}
