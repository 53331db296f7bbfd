// README: Error sentinels shared across modules.
package types

import "errors"

// ErrBadRequest marks input rejected by validation; module sentinels alias it.
var ErrBadRequest = errors.New("bad request")
