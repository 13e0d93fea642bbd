package ports

import "time"

// Clock supplies the current time to the application core. Delivery estimates
// and history timestamps derive from it, so handlers take a Clock instead of
// calling time.Now and tests can pin "now".
type Clock interface {
	Now() time.Time
}
