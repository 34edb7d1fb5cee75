// README: Pending route-offer state kept between two chat turns of the same user.
package session

import "errors"

// ErrLockTimeout is returned when the per-user lock could not be acquired
// before the caller's context ended.
var ErrLockTimeout = errors.New("session: timed out waiting for user lock")

// Context records that the assistant offered a cultural route and is waiting
// for the user's answer. The zero value means no pending offer.
type Context struct {
	AwaitingConfirmation bool   `json:"awaitingConfirmation"`
	Origin               string `json:"origin"`
	Destination          string `json:"destination"`
}

// Pending reports whether c carries a complete route offer.
func (c Context) Pending() bool {
	return c.AwaitingConfirmation && c.Origin != "" && c.Destination != ""
}
