package bookingclient

// Status is the submission lifecycle of one client.
type Status string

const (
	// StatusIdle means no submission has been attempted yet.
	StatusIdle Status = "idle"
	// StatusPending means a POST is in flight.
	StatusPending Status = "pending"
	// StatusSuccess means the server accepted the booking.
	StatusSuccess Status = "success"
	// StatusFailure means the server rejected the booking or the
	// request errored. Retry is allowed.
	StatusFailure Status = "failure"
	// StatusOffline means connectivity probing failed and no POST
	// was sent. Retry is allowed.
	StatusOffline Status = "offline"
)
