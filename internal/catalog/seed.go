package catalog

import "github.com/shopspring/decimal"

// SeedProducts returns the demo catalog every new session starts with.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Quantum X1 Smartphone",
			Description: "High-performance smartphone with advanced AI photography capabilities and 120Hz display.",
			Price:       decimal.RequireFromString("899.99"),
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/seed/phone1/600/600",
			Stock:       15,
			Rating:      4.8,
		},
		{
			ID:          "2",
			Name:        "Precision Chronograph Watch",
			Description: "Elegant stainless steel timepiece with sapphire crystal and Japanese movement.",
			Price:       decimal.RequireFromString("249.50"),
			Category:    CategoryFashion,
			Image:       "https://picsum.photos/seed/watch1/600/600",
			Stock:       24,
			Rating:      4.5,
		},
		{
			ID:          "3",
			Name:        "SonicWave Noise-Cancelling Headphones",
			Description: "Experience pure sound with active noise cancellation and 40-hour battery life.",
			Price:       decimal.RequireFromString("329.99"),
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/seed/audio1/600/600",
			Stock:       8,
			Rating:      4.9,
		},
		{
			ID:          "4",
			Name:        "Nordic Oak Coffee Table",
			Description: "Minimalist Scandinavian design crafted from solid sustainable oak.",
			Price:       decimal.RequireFromString("450.00"),
			Category:    CategoryHome,
			Image:       "https://picsum.photos/seed/table1/600/600",
			Stock:       5,
			Rating:      4.7,
		},
		{
			ID:          "5",
			Name:        "UltraLite Running Shoes",
			Description: "Breathable mesh running shoes with responsive foam cushioning for ultimate performance.",
			Price:       decimal.RequireFromString("129.00"),
			Category:    CategorySports,
			Image:       "https://picsum.photos/seed/shoes1/600/600",
			Stock:       30,
			Rating:      4.6,
		},
		{
			ID:          "6",
			Name:        "PureRadiance Glow Serum",
			Description: "Natural vitamin C infused serum for a brighter, more even skin tone.",
			Price:       decimal.RequireFromString("45.99"),
			Category:    CategoryBeauty,
			Image:       "https://picsum.photos/seed/beauty1/600/600",
			Stock:       50,
			Rating:      4.4,
		},
	}
}
