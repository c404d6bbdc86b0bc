package repository

import "github.com/tair/littleones/internal/catalog/domain"

func ptr(v float64) *float64 { return &v }

var placeholderImages = []string{"/placeholder.svg", "/placeholder.svg", "/placeholder.svg"}

// SeedProducts returns the bundled product data. Each call returns fresh slices.
func SeedProducts() []domain.Product {
	images := func() []string { return append([]string(nil), placeholderImages...) }

	return []domain.Product{
		{
			ID:            "1",
			Name:          "Cozy Cloud Sweater",
			Slug:          "cozy-cloud-sweater",
			Price:         45,
			OriginalPrice: ptr(55),
			Image:         "/placeholder.svg",
			Images:        images(),
			Category:      domain.CategoryTops,
			AgeGroup:      domain.AgeGroupKids,
			Sizes:         []string{"2T", "3T", "4T", "5", "6", "7"},
			Colors: []domain.ColorOption{
				{Name: "Cream", Value: "hsl(40, 30%, 95%)"},
				{Name: "Blush", Value: "hsl(340, 70%, 85%)"},
				{Name: "Sky", Value: "hsl(200, 85%, 75%)"},
			},
			Description:      "The softest sweater your little one will ever own. Made from premium organic cotton with a cloud-like texture.",
			Materials:        "100% Organic Cotton",
			CareInstructions: "Machine wash cold, tumble dry low",
			Rating:           4.8,
			ReviewCount:      124,
			InStock:          true,
			IsNew:            true,
		},
		{
			ID:       "2",
			Name:     "Adventure Denim Overalls",
			Slug:     "adventure-denim-overalls",
			Price:    58,
			Image:    "/placeholder.svg",
			Images:   images(),
			Category: domain.CategoryBottoms,
			AgeGroup: domain.AgeGroupToddler,
			Sizes:    []string{"12M", "18M", "24M", "2T", "3T"},
			Colors: []domain.ColorOption{
				{Name: "Classic Blue", Value: "hsl(210, 60%, 45%)"},
				{Name: "Light Wash", Value: "hsl(210, 40%, 70%)"},
			},
			Description:      "Built for play! These durable overalls feature adjustable straps and reinforced knees for all-day adventures.",
			Materials:        "98% Cotton, 2% Elastane",
			CareInstructions: "Machine wash cold, hang dry",
			Rating:           4.9,
			ReviewCount:      89,
			InStock:          true,
		},
		{
			ID:            "3",
			Name:          "Rainbow Dreams Dress",
			Slug:          "rainbow-dreams-dress",
			Price:         52,
			OriginalPrice: ptr(65),
			Image:         "/placeholder.svg",
			Images:        images(),
			Category:      domain.CategoryDresses,
			AgeGroup:      domain.AgeGroupKids,
			Sizes:         []string{"3T", "4T", "5", "6", "7", "8"},
			Colors: []domain.ColorOption{
				{Name: "Rainbow", Value: "linear-gradient(90deg, hsl(0, 80%, 70%), hsl(45, 90%, 60%), hsl(120, 60%, 50%), hsl(200, 85%, 65%), hsl(280, 70%, 60%))"},
			},
			Description:      "Twirl-worthy magic! This flowing dress features subtle rainbow gradients that shimmer with every spin.",
			Materials:        "100% Recycled Polyester",
			CareInstructions: "Machine wash cold, lay flat to dry",
			Rating:           4.7,
			ReviewCount:      156,
			InStock:          true,
			IsSale:           true,
		},
		{
			ID:       "4",
			Name:     "Sunny Day Romper",
			Slug:     "sunny-day-romper",
			Price:    38,
			Image:    "/placeholder.svg",
			Images:   images(),
			Category: domain.CategoryBottoms,
			AgeGroup: domain.AgeGroupBaby,
			Sizes:    []string{"0-3M", "3-6M", "6-12M", "12-18M"},
			Colors: []domain.ColorOption{
				{Name: "Sunshine", Value: "hsl(45, 95%, 60%)"},
				{Name: "Mint", Value: "hsl(165, 50%, 70%)"},
				{Name: "Coral", Value: "hsl(15, 90%, 65%)"},
			},
			Description:      "Breezy and easy for warm days. Features snap closures for quick changes and soft elastic at the legs.",
			Materials:        "100% Organic Cotton",
			CareInstructions: "Machine wash gentle, tumble dry low",
			Rating:           4.9,
			ReviewCount:      203,
			InStock:          true,
			IsNew:            true,
		},
		{
			ID:       "5",
			Name:     "Explorer Puffer Jacket",
			Slug:     "explorer-puffer-jacket",
			Price:    85,
			Image:    "/placeholder.svg",
			Images:   images(),
			Category: domain.CategoryOuterwear,
			AgeGroup: domain.AgeGroupKids,
			Sizes:    []string{"4", "5", "6", "7", "8", "10"},
			Colors: []domain.ColorOption{
				{Name: "Forest", Value: "hsl(150, 40%, 35%)"},
				{Name: "Berry", Value: "hsl(340, 60%, 45%)"},
				{Name: "Navy", Value: "hsl(220, 50%, 30%)"},
			},
			Description:      "Water-resistant warmth for outdoor adventures. Features a detachable hood and reflective details for visibility.",
			Materials:        "Shell: 100% Recycled Nylon, Fill: Synthetic Down",
			CareInstructions: "Machine wash cold, tumble dry low with tennis balls",
			Rating:           4.8,
			ReviewCount:      67,
			InStock:          true,
		},
		{
			ID:       "6",
			Name:     "Comfort Stretch Leggings",
			Slug:     "comfort-stretch-leggings",
			Price:    28,
			Image:    "/placeholder.svg",
			Images:   images(),
			Category: domain.CategoryBottoms,
			AgeGroup: domain.AgeGroupKids,
			Sizes:    []string{"2T", "3T", "4T", "5", "6", "7", "8"},
			Colors: []domain.ColorOption{
				{Name: "Black", Value: "hsl(0, 0%, 15%)"},
				{Name: "Navy", Value: "hsl(220, 50%, 25%)"},
				{Name: "Berry", Value: "hsl(340, 65%, 55%)"},
				{Name: "Sage", Value: "hsl(150, 25%, 55%)"},
			},
			Description:      "Super stretchy and stays put! Perfect for active play with a soft, breathable fabric that moves with them.",
			Materials:        "92% Organic Cotton, 8% Elastane",
			CareInstructions: "Machine wash cold, tumble dry low",
			Rating:           4.6,
			ReviewCount:      312,
			InStock:          true,
		},
		{
			ID:       "7",
			Name:     "Starlight Pajama Set",
			Slug:     "starlight-pajama-set",
			Price:    42,
			Image:    "/placeholder.svg",
			Images:   images(),
			Category: domain.CategoryTops,
			AgeGroup: domain.AgeGroupToddler,
			Sizes:    []string{"18M", "24M", "2T", "3T", "4T", "5"},
			Colors: []domain.ColorOption{
				{Name: "Lavender Stars", Value: "hsl(270, 50%, 80%)"},
				{Name: "Blue Moons", Value: "hsl(200, 60%, 70%)"},
			},
			Description:      "Sweet dreams start here. This cozy pajama set features glow-in-the-dark stars and a snug, flame-resistant fit.",
			Materials:        "100% Organic Cotton, Snug Fit",
			CareInstructions: "Machine wash warm, tumble dry medium",
			Rating:           4.9,
			ReviewCount:      178,
			InStock:          true,
		},
		{
			ID:       "8",
			Name:     "Adventure Bucket Hat",
			Slug:     "adventure-bucket-hat",
			Price:    22,
			Image:    "/placeholder.svg",
			Images:   images(),
			Category: domain.CategoryAccessories,
			AgeGroup: domain.AgeGroupKids,
			Sizes:    []string{"S (2-4Y)", "M (4-6Y)", "L (6-8Y)"},
			Colors: []domain.ColorOption{
				{Name: "Khaki", Value: "hsl(45, 30%, 65%)"},
				{Name: "Sage", Value: "hsl(150, 25%, 55%)"},
				{Name: "Coral", Value: "hsl(15, 85%, 70%)"},
			},
			Description:      "Sun protection with style! UPF 50+ fabric with a chin strap to keep it on during adventures.",
			Materials:        "100% Recycled Polyester, UPF 50+",
			CareInstructions: "Hand wash, air dry",
			Rating:           4.7,
			ReviewCount:      94,
			InStock:          true,
			IsNew:            true,
		},
	}
}
