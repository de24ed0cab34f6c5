package store

import (
	"time"

	"github.com/fjod/storefront/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// SeedProducts returns the default assortment. Each call returns fresh slices.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "p1",
			Name:          "Banarasi Silk Saree",
			Price:         7999,
			OriginalPrice: 9999,
			Description:   "Traditional Banarasi silk saree with intricate golden zari work, perfect for weddings and special occasions.",
			Image:         "https://images.pexels.com/photos/4125082/pexels-photo-4125082.jpeg",
			Images: []string{
				"https://images.pexels.com/photos/4125082/pexels-photo-4125082.jpeg",
				"https://images.pexels.com/photos/4125094/pexels-photo-4125094.jpeg",
				"https://images.pexels.com/photos/4125093/pexels-photo-4125093.jpeg",
			},
			Category:   "sarees",
			Rating:     4.8,
			Reviews:    128,
			Tags:       []string{"silk", "wedding", "traditional", "banarasi"},
			Material:   "silk",
			Featured:   true,
			BestSeller: true,
			Stock:      25,
			CreatedAt:  day(2023, time.September, 15),
			Specs: map[string]string{
				"Fabric":       "Pure silk",
				"Length":       "6.3 meters",
				"Blouse Piece": "Included (0.8 meters)",
				"Wash Care":    "Dry clean only",
			},
			Features: []string{
				"Pure Banarasi silk with GI tag",
				"Handcrafted zari work",
				"Rich pallu with traditional motifs",
				"Comes with matching blouse piece",
			},
		},
		{
			ID:            "p2",
			Name:          "Designer Anarkali Suit",
			Price:         5499,
			OriginalPrice: 7999,
			Description:   "Elegant Anarkali suit with embroidered bodice and flared silhouette, perfect for festive occasions.",
			Image:         "https://images.pexels.com/photos/13990066/pexels-photo-13990066.jpeg",
			Category:      "suits",
			Rating:        4.6,
			Reviews:       86,
			Tags:          []string{"anarkali", "festive", "embroidered"},
			Material:      "georgette",
			Featured:      true,
			Stock:         18,
			CreatedAt:     day(2023, time.October, 2),
			Specs: map[string]string{
				"Top Fabric":     "Embroidered georgette",
				"Bottom Fabric":  "Santoon",
				"Dupatta Fabric": "Chiffon",
				"Style":          "Anarkali",
				"Stitch Type":    "Semi-stitched",
			},
		},
		{
			ID:            "p3",
			Name:          "Men's Nehru Jacket",
			Price:         3499,
			OriginalPrice: 4999,
			Description:   "Classic Nehru collar jacket in rich brocade fabric, perfect for festive and wedding occasions.",
			Image:         "https://images.pexels.com/photos/2897530/pexels-photo-2897530.jpeg",
			Category:      "mens",
			Rating:        4.7,
			Reviews:       72,
			Tags:          []string{"nehru jacket", "wedding", "festive", "traditional", "men"},
			Material:      "brocade",
			BestSeller:    true,
			Stock:         30,
			CreatedAt:     day(2023, time.August, 20),
		},
		{
			ID:            "p4",
			Name:          "Kundan Bridal Jewelry Set",
			Price:         12999,
			OriginalPrice: 15999,
			Description:   "Exquisite Kundan bridal jewelry set including necklace, earrings, and maang tikka.",
			Image:         "https://images.pexels.com/photos/12339571/pexels-photo-12339571.jpeg",
			Category:      "jewelry",
			Rating:        4.9,
			Reviews:       56,
			Tags:          []string{"kundan", "bridal", "jewelry", "wedding"},
			Featured:      true,
			BestSeller:    true,
			Stock:         10,
			CreatedAt:     day(2023, time.July, 12),
		},
		{
			ID:            "p5",
			Name:          "Handloom Cotton Saree",
			Price:         2499,
			OriginalPrice: 2999,
			Description:   "Comfortable handloom cotton saree with traditional motifs, perfect for daily and office wear.",
			Image:         "https://images.pexels.com/photos/5212698/pexels-photo-5212698.jpeg",
			Category:      "sarees",
			Rating:        4.5,
			Reviews:       112,
			Tags:          []string{"cotton", "handloom", "daily wear", "office"},
			Material:      "cotton",
			Stock:         45,
			CreatedAt:     day(2023, time.November, 5),
		},
		{
			ID:            "p6",
			Name:          "Wedding Lehenga Choli",
			Price:         18999,
			OriginalPrice: 24999,
			Description:   "Stunning bridal lehenga with heavy embroidery and mirror work, paired with matching choli and dupatta.",
			Image:         "https://images.pexels.com/photos/2383886/pexels-photo-2383886.jpeg",
			Category:      "lehengas",
			Rating:        4.9,
			Reviews:       48,
			Tags:          []string{"lehenga", "bridal", "wedding", "embroidered"},
			Material:      "velvet",
			Featured:      true,
			BestSeller:    true,
			Stock:         8,
			CreatedAt:     day(2023, time.June, 18),
		},
		{
			ID:            "p7",
			Name:          "Embroidered Potli Bag",
			Price:         1299,
			OriginalPrice: 1499,
			Description:   "Elegant embroidered potli bag with drawstring closure, perfect for weddings and festive occasions.",
			Image:         "https://images.pexels.com/photos/1078973/pexels-photo-1078973.jpeg",
			Category:      "accessories",
			Rating:        4.3,
			Reviews:       35,
			Tags:          []string{"potli", "bag", "accessories", "wedding"},
			Stock:         50,
			CreatedAt:     day(2023, time.October, 28),
		},
		{
			ID:            "p8",
			Name:          "Men's Kurta Pajama Set",
			Price:         2799,
			OriginalPrice: 3499,
			Description:   "Traditional cotton kurta pajama set with elegant embroidery, perfect for festive occasions.",
			Image:         "https://images.pexels.com/photos/5705499/pexels-photo-5705499.jpeg",
			Category:      "mens",
			Rating:        4.4,
			Reviews:       62,
			Tags:          []string{"kurta", "pajama", "cotton", "festive", "men"},
			Material:      "cotton",
			Stock:         28,
			CreatedAt:     day(2023, time.September, 8),
		},
		{
			ID:            "p9",
			Name:          "Traditional Jhumka Earrings",
			Price:         1899,
			OriginalPrice: 2299,
			Description:   "Classic gold-plated jhumka earrings with intricate detailing and pearl drops.",
			Image:         "https://images.pexels.com/photos/9157528/pexels-photo-9157528.jpeg",
			Category:      "jewelry",
			Rating:        4.7,
			Reviews:       89,
			Tags:          []string{"jhumka", "earrings", "traditional", "jewelry"},
			BestSeller:    true,
			Stock:         35,
			CreatedAt:     day(2023, time.August, 3),
		},
		{
			ID:            "p10",
			Name:          "Chiffon Designer Saree",
			Price:         3999,
			OriginalPrice: 4499,
			Description:   "Lightweight chiffon saree with modern prints and sequin border, perfect for parties.",
			Image:         "https://images.pexels.com/photos/7586288/pexels-photo-7586288.jpeg",
			Category:      "sarees",
			Rating:        4.3,
			Reviews:       56,
			Tags:          []string{"chiffon", "party wear", "designer", "saree"},
			Material:      "chiffon",
			Stock:         22,
			CreatedAt:     day(2023, time.November, 12),
		},
	}
}

func SeedCategories() []domain.Category {
	return []domain.Category{
		{ID: "sarees", Name: "Sarees", Image: "https://images.pexels.com/photos/8733096/pexels-photo-8733096.jpeg"},
		{ID: "lehengas", Name: "Lehengas", Image: "https://images.pexels.com/photos/2383886/pexels-photo-2383886.jpeg"},
		{ID: "suits", Name: "Suits", Image: "https://images.pexels.com/photos/10415738/pexels-photo-10415738.jpeg"},
		{ID: "mens", Name: "Mens", Image: "https://images.pexels.com/photos/2897531/pexels-photo-2897531.jpeg"},
		{ID: "jewelry", Name: "Jewelry", Image: "https://images.pexels.com/photos/12339582/pexels-photo-12339582.jpeg"},
		{ID: "accessories", Name: "Accessories", Image: "https://images.pexels.com/photos/1078958/pexels-photo-1078958.jpeg"},
	}
}

func SeedCollections() []domain.Collection {
	return []domain.Collection{
		{
			ID:          "wedding",
			Name:        "Wedding Collection",
			Image:       "https://images.pexels.com/photos/1444442/pexels-photo-1444442.jpeg",
			Description: "Elegant wedding attire for your special day",
		},
		{
			ID:          "festive",
			Name:        "Festive Collection",
			Image:       "https://images.pexels.com/photos/2249172/pexels-photo-2249172.jpeg",
			Description: "Celebrate festivals with style and tradition",
		},
		{
			ID:          "casual",
			Name:        "Casual Wear",
			Image:       "https://images.pexels.com/photos/10513027/pexels-photo-10513027.jpeg",
			Description: "Comfortable yet stylish everyday wear",
		},
	}
}
