package booking

import "time"

type AvailabilityInput struct {
	ServiceID uint
	Date      time.Time
}
