package registration

import (
	"time"

	"github.com/google/uuid"

	"github.com/festhub/festival-api/internal/domain/booking"
)

// Record is a submitted booking as stored by the backend. The embedded
// draft fields become authoritative here: the total is recomputed
// server-side before the insert.
type Record struct {
	ID uuid.UUID `json:"id" db:"id"`

	booking.Booking

	// SignatureURL points at the archived signature image, empty when the
	// archive is disabled.
	SignatureURL string `json:"signature_url,omitempty" db:"signature_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
