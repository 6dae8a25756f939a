package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/Adityadhvn/Partier/internal/utils"
	"github.com/shopspring/decimal"
)

// Seed populates the store with demo data: an attendee, an organizer
// with a handful of events and ticket types, a lineup for the featured
// event and one already-purchased ticket. Only used in memory mode so
// the API is explorable without a database.
func (s *MemoryStore) Seed() error {
	attendeeHash, err := utils.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	attendee, err := s.Create(&models.User{
		Username:     "johnsmith",
		PasswordHash: attendeeHash,
		Email:        "john@example.com",
		FullName:     "John Smith",
	})
	if err != nil {
		return err
	}

	organizer, err := s.Create(&models.User{
		Username:     "eventorganizer",
		PasswordHash: attendeeHash,
		Email:        "organizer@example.com",
		FullName:     "Event Organizer",
		IsOrganizer:  true,
	})
	if err != nil {
		return err
	}

	festival, err := s.CreateEvent(&models.EventCreateRequest{
		Title:       "Neon Dreams Festival",
		Description: "A night of electronic music and visual spectacles with top DJs, immersive light shows and multiple stages.",
		ImageURL:    "https://images.example.com/neon-dreams.jpg",
		Date:        time.Now().AddDate(0, 1, 0),
		Location:    "Warehouse District",
		Address:     "123 Main St",
		OrganizerID: organizer.ID,
		Featured:    true,
		Tags:        []string{"Electronic", "Festival", "DJ", "Live Music"},
	})
	if err != nil {
		return err
	}

	techno, err := s.CreateEvent(&models.EventCreateRequest{
		Title:       "Techno Underground",
		Description: "Internationally acclaimed DJs in an intimate venue.",
		ImageURL:    "https://images.example.com/techno-underground.jpg",
		Date:        time.Now().AddDate(0, 1, 5),
		Location:    "Pulse Club",
		Address:     "456 Club Ave",
		OrganizerID: organizer.ID,
		Featured:    true,
		Tags:        []string{"Techno", "Underground", "DJ"},
	})
	if err != nil {
		return err
	}

	general, err := s.CreateTicketType(&models.TicketTypeCreateRequest{
		EventID:     festival.ID,
		Name:        "General Admission",
		Description: "Access to all areas except VIP",
		Price:       decimal.RequireFromString("45.00"),
		Available:   200,
	})
	if err != nil {
		return err
	}

	if _, err := s.CreateTicketType(&models.TicketTypeCreateRequest{
		EventID:     festival.ID,
		Name:        "VIP Access",
		Description: "Premium viewing areas & complimentary drinks",
		Price:       decimal.RequireFromString("95.00"),
		Available:   50,
	}); err != nil {
		return err
	}

	if _, err := s.CreateTicketType(&models.TicketTypeCreateRequest{
		EventID:     techno.ID,
		Name:        "Standard Entry",
		Description: "Regular club access",
		Price:       decimal.RequireFromString("30.00"),
		Available:   150,
	}); err != nil {
		return err
	}

	lineup := []*models.PerformerCreateRequest{
		{EventID: festival.ID, Name: "DJ Pulse", ImageURL: "https://images.example.com/dj-pulse.jpg", Time: "10:00 PM", IsHeadliner: true},
		{EventID: festival.ID, Name: "Electra", ImageURL: "https://images.example.com/electra.jpg", Time: "9:00 PM"},
		{EventID: festival.ID, Name: "Synthesize", ImageURL: "https://images.example.com/synthesize.jpg", Time: "8:00 PM"},
	}
	for _, performer := range lineup {
		if _, err := s.CreatePerformer(performer); err != nil {
			return err
		}
	}

	paymentDetails, _ := json.Marshal(map[string]string{
		"method":     "Credit Card",
		"last4":      "4242",
		"subtotal":   "45.00",
		"serviceFee": "5.00",
		"tax":        "3.50",
	})

	_, err = s.CreateTicket(&models.TicketPurchaseRequest{
		UserID:         attendee.ID,
		EventID:        festival.ID,
		TicketTypeID:   general.ID,
		Quantity:       1,
		TotalPrice:     decimal.RequireFromString("53.50"),
		PaymentDetails: paymentDetails,
	}, "TIX10001")

	return err
}
