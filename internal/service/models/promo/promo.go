package promo

import "time"

// Promo is a homepage promotion banner with a hard deadline.
type Promo struct {
	ID         int64     `json:"id"`
	Headline   string    `json:"headline"`
	Subheading string    `json:"subheading"`
	CTA        string    `json:"cta,omitempty"`
	Deadline   time.Time `json:"deadline"`
	CreatedAt  time.Time `json:"createdAt"`
}
