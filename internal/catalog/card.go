package catalog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Redemption kinds. A "link" opens externally, a "code" is copied by the
// client. The set is open: rows from the sheet may carry other values and
// they are passed through untouched.
const (
	KindLink = "link"
	KindCode = "code"
)

const (
	DefaultCategory = "Affiliate"
	DefaultIcon     = "fas fa-gift"
)

var ErrInvalidCard = errors.New("invalid card")

// Card is a single promotional offer. Field names on the wire match the
// original public API consumed by the frontend.
type Card struct {
	ID          string    `json:"id"`
	ServiceName string    `json:"serviceName"`
	Category    string    `json:"category"`
	Offer       string    `json:"offer"`
	Price       string    `json:"price"`
	Type        string    `json:"type"`
	Value       string    `json:"value"`
	Badge       string    `json:"badge,omitempty"`
	Slug        string    `json:"slug"`
	Icon        string    `json:"icon,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CardInput is the client-supplied shape for card creation and the
// sheets webhook.
type CardInput struct {
	ServiceName string `json:"serviceName"`
	Category    string `json:"category"`
	Offer       string `json:"offer"`
	Price       string `json:"price"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Badge       string `json:"badge"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	ImageURL    string `json:"imageUrl"`
}

// Validate applies the same acceptance rule as the sheet row filter:
// serviceName, offer and value must be non-empty after trimming.
func (in CardInput) Validate() error {
	if strings.TrimSpace(in.ServiceName) == "" {
		return errors.New("serviceName is required")
	}
	if strings.TrimSpace(in.Offer) == "" {
		return errors.New("offer is required")
	}
	if strings.TrimSpace(in.Value) == "" {
		return errors.New("value is required")
	}
	return nil
}

// Card trims every field and fills defaults, deriving the slug from the
// service name when absent. Identity and creation time are left to the
// caller.
func (in CardInput) Card() Card {
	c := Card{
		ServiceName: strings.TrimSpace(in.ServiceName),
		Category:    strings.TrimSpace(in.Category),
		Offer:       strings.TrimSpace(in.Offer),
		Price:       strings.TrimSpace(in.Price),
		Type:        strings.TrimSpace(in.Type),
		Value:       strings.TrimSpace(in.Value),
		Badge:       strings.TrimSpace(in.Badge),
		Slug:        strings.TrimSpace(in.Slug),
		Icon:        strings.TrimSpace(in.Icon),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}

	if c.Category == "" {
		c.Category = DefaultCategory
	}
	if c.Type == "" {
		c.Type = KindLink
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.ServiceName)
	}
	return c
}

var nonAlphanumeric = regexp.MustCompile("[^a-z0-9]+")

// Slugify lower-cases the name and collapses runs of non-alphanumeric
// characters into single hyphens. No other normalization: apostrophes and
// symbols become hyphens, and a leading or trailing run keeps its hyphen,
// so derived slugs stay stable for clients that already hold them.
func Slugify(name string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
}
