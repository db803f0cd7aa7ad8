// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewActionID returns a UUIDv7 identifying an operator action.
//
// An action is a single discrete operator intervention on the plant
// (opening a valve, changing a pump speed) together with the chain
// of recomputations it triggers. Attach the action ID to the logger
// with [*slog.Logger.With] before invoking the operation, and every
// event emitted while it runs will carry the same actionID, enabling
// correlation across components during a network evaluation.
//
// The identifier is time-ordered, so sorting by actionID reproduces
// the order in which operator actions were applied.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewActionID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
