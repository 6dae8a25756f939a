package services

import (
	"errors"
	"sync"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/google/uuid"
)

// ScanState represents where a gate device is in its scan cycle
type ScanState string

const (
	ScanIdle      ScanState = "idle"
	ScanResolving ScanState = "resolving"
	ScanValidated ScanState = "validated"
	ScanInvalid   ScanState = "invalid"
)

var (
	ErrScanSessionNotFound = errors.New("scan session not found")
	// ErrScanBusy is returned when a code is submitted while the
	// session is not idle. The submission is ignored; the cycle only
	// restarts on an explicit reset.
	ErrScanBusy = errors.New("scan session is not accepting codes")
)

// ScanResult is what the gate UI renders after a submission: the
// outcome state plus ticket and event detail on success, or a reason
// on failure.
type ScanResult struct {
	State      ScanState          `json:"state"`
	Code       string             `json:"code"`
	Ticket     *models.Ticket     `json:"ticket,omitempty"`
	Event      *models.Event      `json:"event,omitempty"`
	TicketType *models.TicketType `json:"ticketType,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	ScannedAt  time.Time          `json:"scannedAt"`
}

// ScanSession is the per-gate state machine:
// idle -> resolving -> validated | invalid -> (reset) -> idle.
// validated and invalid are dead ends until the operator explicitly
// starts the next cycle; there is no timeout back to idle.
type ScanSession struct {
	ID      string      `json:"id"`
	State   ScanState   `json:"state"`
	Result  *ScanResult `json:"result,omitempty"`
	Started time.Time   `json:"started"`
}

// ScannerService manages gate scan sessions. A submission resolves
// the code through the ticket service, which performs the lookup and
// the redemption transition atomically.
type ScannerService struct {
	mu            sync.Mutex
	sessions      map[string]*ScanSession
	ticketService *TicketService
}

// NewScannerService creates a new scanner service
func NewScannerService(ticketService *TicketService) *ScannerService {
	return &ScannerService{
		sessions:      make(map[string]*ScanSession),
		ticketService: ticketService,
	}
}

// OpenSession creates a new idle scan session for a gate device
func (s *ScannerService) OpenSession() *ScanSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &ScanSession{
		ID:      uuid.NewString(),
		State:   ScanIdle,
		Started: time.Now(),
	}
	s.sessions[session.ID] = session

	copied := *session
	return &copied
}

// GetSession retrieves a scan session by id
func (s *ScannerService) GetSession(id string) (*ScanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrScanSessionNotFound
	}

	copied := *session
	return &copied, nil
}

// Submit feeds a scanned or hand-typed code into a session. Only an
// idle session accepts a code; submissions while resolving or while a
// result is showing return ErrScanBusy without touching the cycle.
func (s *ScannerService) Submit(sessionID, code string) (*ScanResult, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrScanSessionNotFound
	}

	if session.State != ScanIdle {
		s.mu.Unlock()
		return nil, ErrScanBusy
	}

	session.State = ScanResolving
	s.mu.Unlock()

	result := s.resolve(code)

	s.mu.Lock()
	session.State = result.State
	session.Result = result
	s.mu.Unlock()

	return result, nil
}

// Reset returns a session showing a result to idle so the operator
// can scan the next ticket. Resetting mid-resolve is rejected.
func (s *ScannerService) Reset(sessionID string) (*ScanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrScanSessionNotFound
	}

	if session.State == ScanResolving {
		return nil, ErrScanBusy
	}

	session.State = ScanIdle
	session.Result = nil

	copied := *session
	return &copied, nil
}

// CloseSession discards a session when a gate shuts down
func (s *ScannerService) CloseSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// resolve redeems the code and assembles the panel detail for the
// outcome
func (s *ScannerService) resolve(code string) *ScanResult {
	result := &ScanResult{
		Code:      code,
		ScannedAt: time.Now(),
	}

	ticket, err := s.ticketService.RedeemTicket(code)
	switch {
	case err == nil:
		result.State = ScanValidated
		result.Ticket = ticket
	case errors.Is(err, models.ErrTicketRedeemed):
		result.State = ScanInvalid
		result.Ticket = ticket
		result.Reason = "ticket already redeemed"
		if ticket != nil && ticket.RedeemedAt != nil {
			result.Reason = "ticket already redeemed at " + ticket.RedeemedAt.Format(time.RFC3339)
		}
		return result
	case errors.Is(err, models.ErrTicketNotFound):
		result.State = ScanInvalid
		result.Reason = "no ticket matches this code"
		return result
	default:
		result.State = ScanInvalid
		result.Reason = "lookup failed, try again"
		return result
	}

	// Success panel shows event and ticket type detail alongside the
	// ticket itself. Failures to load detail do not invalidate the
	// scan.
	if event, err := s.ticketService.eventRepo.GetEventByID(ticket.EventID); err == nil {
		result.Event = event
	}
	if ticketType, err := s.ticketService.ticketRepo.GetTicketTypeByID(ticket.TicketTypeID); err == nil {
		result.TicketType = ticketType
	}

	return result
}
