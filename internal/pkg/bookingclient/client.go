package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/festhub/festival-api/internal/domain/booking"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous POST has not settled.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	// ErrAlreadySubmitted is returned once a booking was accepted.
	ErrAlreadySubmitted = errors.New("booking was already submitted")
)

// TokenStore holds the bearer token for the session. Clear is called
// when the server answers 401 so the next attempt forces a new login.
type TokenStore interface {
	Token() string
	Clear()
}

// MemoryTokenStore is the in-process TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// State is a snapshot of the client.
type State struct {
	Status    Status `json:"status"`
	BookingID string `json:"booking_id,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// Options configures a Client.
type Options struct {
	// InvalidateAfterSuccess is how long after an accepted submission
	// the session is dropped. Zero disables the timer.
	InvalidateAfterSuccess time.Duration
	// InvalidateAfterFailure is the same for a rejected submission.
	InvalidateAfterFailure time.Duration
	// OnInvalidate runs when either timer fires.
	OnInvalidate func()
}

// Client submits a finished booking draft exactly once. The POST is
// never retried automatically: a failed attempt settles into
// StatusFailure and waits for an explicit Retry.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	tokens       TokenStore
	connectivity ConnectivityChecker
	opts         Options

	mu         sync.Mutex
	state      State
	generation uint64
}

// New creates a booking client. connectivity may be nil, which skips
// the offline probe.
func New(httpClient *http.Client, baseURL string, tokens TokenStore, connectivity ConnectivityChecker, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if connectivity == nil {
		connectivity = AlwaysOnline{}
	}
	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		tokens:       tokens,
		connectivity: connectivity,
		opts:         opts,
		state:        State{Status: StatusIdle},
	}
}

// State returns a snapshot.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit attempts the one-shot POST. The returned state is the settled
// outcome of this attempt: success, failure or offline.
func (c *Client) Submit(ctx context.Context, draft *booking.Booking) (State, error) {
	c.mu.Lock()
	switch c.state.Status {
	case StatusPending:
		c.mu.Unlock()
		return State{}, ErrSubmissionInFlight
	case StatusSuccess:
		c.mu.Unlock()
		return State{}, ErrAlreadySubmitted
	}

	if !c.connectivity.Online(ctx) {
		c.state = State{Status: StatusOffline, LastError: "no connection to the booking service"}
		st := c.state
		c.mu.Unlock()
		return st, nil
	}

	c.generation++
	gen := c.generation
	c.state = State{Status: StatusPending}
	c.mu.Unlock()

	st := c.post(ctx, draft)
	return c.settle(gen, st), nil
}

// Retry re-attempts after a failure or offline outcome.
func (c *Client) Retry(ctx context.Context, draft *booking.Booking) (State, error) {
	c.mu.Lock()
	if c.state.Status != StatusFailure && c.state.Status != StatusOffline {
		status := c.state.Status
		c.mu.Unlock()
		if status == StatusPending {
			return State{}, ErrSubmissionInFlight
		}
		if status == StatusSuccess {
			return State{}, ErrAlreadySubmitted
		}
	} else {
		c.state = State{Status: StatusIdle}
		c.mu.Unlock()
	}
	return c.Submit(ctx, draft)
}

func (c *Client) post(ctx context.Context, draft *booking.Booking) State {
	body, err := json.Marshal(draft)
	if err != nil {
		return State{Status: StatusFailure, LastError: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submitForm", bytes.NewReader(body))
	if err != nil {
		return State{Status: StatusFailure, LastError: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.tokens.Token())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return State{Status: StatusFailure, LastError: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		var envelope struct {
			Data struct {
				BookingID string `json:"booking_id"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			log.Warn().Err(err).Msg("Submission accepted but response body unreadable")
		}
		return State{Status: StatusSuccess, BookingID: envelope.Data.BookingID}
	case resp.StatusCode == http.StatusUnauthorized:
		c.tokens.Clear()
		return State{Status: StatusFailure, LastError: "session expired"}
	default:
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
			msg = envelope.Error.Message
		}
		return State{Status: StatusFailure, LastError: msg}
	}
}

// settle applies the outcome unless a newer attempt superseded it.
func (c *Client) settle(gen uint64, st State) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return c.state
	}
	c.state = st

	var delay time.Duration
	switch st.Status {
	case StatusSuccess:
		delay = c.opts.InvalidateAfterSuccess
	case StatusFailure:
		delay = c.opts.InvalidateAfterFailure
	}
	if delay > 0 && c.opts.OnInvalidate != nil {
		time.AfterFunc(delay, c.opts.OnInvalidate)
	}
	return c.state
}
