package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

var firstNumber = regexp.MustCompile(`\d+`)

// Heuristic is the offline extractor: a keyword-and-number scan standing in
// for the hosted model. Deterministic, so it doubles as the test double and
// as the default when no API key is configured.
type Heuristic struct{}

const defaultAmount = 5000

func (Heuristic) Extract(ctx context.Context, text string) (*Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	amount := float64(defaultAmount)
	if m := firstNumber.FindString(text); m != "" {
		if n, err := strconv.ParseFloat(m, 64); err == nil && n > 0 {
			amount = n
		}
	}
	name := "Fashion Item"
	if strings.Contains(strings.ToLower(text), "cap") {
		name = "Native Cap"
	}
	return &Draft{
		CustomerName: "Guest Customer",
		Items:        []DraftLine{{Name: name, Quantity: 1, Price: amount}},
		TotalAmount:  amount,
		DeliveryFee:  1500,
		Source:       "WhatsApp",
	}, nil
}
