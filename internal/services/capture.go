package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/booklyhq/bookly/internal/extract"
	"github.com/booklyhq/bookly/internal/models"
)

// CaptureService turns free text into a recorded order through the extraction
// capability. Extraction output is untrusted: it goes through the same
// validation and re-totaling as manual input, and a failed or empty
// extraction degrades to a flat-amount draft instead of surfacing a hard
// error to the user.
type CaptureService struct {
	Extractor extract.Extractor
	Orders    *OrderService
	Timeout   time.Duration
}

func NewCaptureService(ex extract.Extractor, orders *OrderService, timeout time.Duration) *CaptureService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CaptureService{Extractor: ex, Orders: orders, Timeout: timeout}
}

// Capture extracts a draft from text and builds an order from it. Returns a
// *ValidationError when neither extraction nor the degraded path can find a
// positive amount.
func (s *CaptureService) Capture(ctx context.Context, text string) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	draft, err := s.Extractor.Extract(ctx, text)
	if err != nil || draft == nil || draft.TotalAmount <= 0 {
		if err != nil {
			log.Printf("extraction failed, using degraded draft: %v", err)
		}
		return s.Orders.BuildOrder(degradedDraft(text))
	}

	in := DraftInput{
		CustomerName: draft.CustomerName,
		Source:       draft.Source,
	}
	if len(draft.Items) == 0 {
		in.FlatAmount = draft.TotalAmount
	} else {
		names := make([]string, 0, len(draft.Items))
		for _, line := range draft.Items {
			in.Items = append(in.Items, DraftItem{Name: line.Name, Quantity: line.Quantity, Price: line.Price})
			names = append(names, line.Name)
		}
		in.Note = "Extracted: " + strings.Join(names, ", ")
	}
	order, err := s.Orders.BuildOrder(in)
	if err != nil {
		// The model produced an unusable draft; fall back rather than bail.
		return s.Orders.BuildOrder(degradedDraft(text))
	}
	return order, nil
}

var captureNumber = regexp.MustCompile(`\d+`)

const degradedNoteLimit = 50

// degradedDraft mirrors the manual fallback: the first number in the text
// becomes a flat amount and the raw text (truncated) becomes the note.
func degradedDraft(text string) DraftInput {
	var amount float64
	if m := captureNumber.FindString(text); m != "" {
		amount, _ = strconv.ParseFloat(m, 64)
	}
	note := text
	if len(note) > degradedNoteLimit {
		note = note[:degradedNoteLimit] + "..."
	}
	return DraftInput{
		CustomerName: "Extracted Customer",
		FlatAmount:   amount,
		Source:       string(models.SourceWhatsApp),
		Note:         note,
	}
}
