package catalog

import (
	"time"

	"github.com/google/uuid"
)

// seedCards is the bundled fallback dataset, visible until the first
// successful sheet fetch.
func seedCards() []Card {
	now := time.Now().UTC()

	return []Card{
		{
			ID:          uuid.NewString(),
			ServiceName: "Amazon Prime",
			Category:    "Affiliate",
			Offer:       "Get 30 days free trial + exclusive deals on thousands of products",
			Price:       "Free",
			Type:        KindLink,
			Value:       "https://amazon.com/prime",
			Badge:       "HOT",
			Slug:        "amazon-prime",
			Icon:        "fas fa-shopping-bag",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a9/Amazon_logo.svg/300px-Amazon_logo.svg.png",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			ServiceName: "Spotify Premium",
			Category:    "Affiliate",
			Offer:       "3 months of ad-free music streaming with offline downloads",
			Price:       "$0.99",
			Type:        KindLink,
			Value:       "https://spotify.com/premium",
			Badge:       "NEW",
			Slug:        "spotify-premium",
			Icon:        "fas fa-music",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/1/19/Spotify_logo_without_text.svg/300px-Spotify_logo_without_text.svg.png",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			ServiceName: "Udemy Courses",
			Category:    "Affiliate",
			Offer:       "Access to over 1000+ programming and design courses",
			Price:       "$19.99",
			Type:        KindLink,
			Value:       "https://udemy.com/courses",
			Badge:       "LIMITED",
			Slug:        "udemy-courses",
			Icon:        "fas fa-laptop-code",
			ImageURL:    "https://www.udemy.com/staticx/udemy/images/v7/logo-udemy.svg",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			ServiceName: "DoorDash",
			Category:    "Code",
			Offer:       "Get $10 off your first order with free delivery",
			Price:       "$10 OFF",
			Type:        KindCode,
			Value:       "SAVE10NOW",
			Badge:       "TRENDING",
			Slug:        "doordash-discount",
			Icon:        "fas fa-pizza-slice",
			ImageURL:    "https://cdn.iconscout.com/icon/free/png-256/free-doordash-logo-icon-download-in-svg-png-gif-file-formats--delivery-food-brand-logos-icons-1652230.png",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			ServiceName: "Nike Store",
			Category:    "Code",
			Offer:       "25% off on all sneakers and athletic wear",
			Price:       "25% OFF",
			Type:        KindCode,
			Value:       "NIKE25OFF",
			Badge:       "EXCLUSIVE",
			Slug:        "nike-discount",
			Icon:        "fas fa-tshirt",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a6/Logo_NIKE.svg/300px-Logo_NIKE.svg.png",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			ServiceName: "McDonald's",
			Category:    "Coupon",
			Offer:       "Buy one Big Mac, get one free + free medium fries",
			Price:       "BOGO",
			Type:        KindCode,
			Value:       "BIGMAC2024",
			Badge:       "FLASH SALE",
			Slug:        "mcdonalds-bogo",
			Icon:        "fas fa-utensils",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/3/36/McDonald%27s_Golden_Arches.svg/300px-McDonald%27s_Golden_Arches.svg.png",
			CreatedAt:   now,
		},
	}
}
