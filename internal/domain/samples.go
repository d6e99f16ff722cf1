package domain

// SampleCard returns the showcase card used for previews and seed data.
func SampleCard() Card {
	return Card{
		ID:        "sample-majestic-oak",
		DisplayID: 42,
		Title:     "Majestic Oak",
		Description: "An ancient oak tree with sprawling branches that has stood for centuries, " +
			"providing shelter for woodland creatures.",
		ImageURL: "https://placekitten.com/300/300",
		Stats: []Stat{
			NewStat("Age", IntValue(250)),
			NewStat("Height", StringValue("18m")),
			NewStat("Habitat", StringValue("Forest")),
			NewStat("Rarity", StringValue("Uncommon")),
		},
		Type: CardTypeGrass,
	}
}

// SampleCards returns the seed collection shown when no cards have been saved.
// The cards are freshly built on every call.
func SampleCards() []Card {
	return []Card{
		SampleCard(),
		{
			ID:        "sample-ruby-crystal",
			DisplayID: 7,
			Title:     "Ruby Crystal",
			Description: "A vibrant red crystal that glows with inner fire, said to embody the " +
				"essence of passion and energy.",
			ImageURL: "https://images.unsplash.com/photo-1566398476332-118d3ba299ad?q=80&w=300",
			Stats: []Stat{
				NewStat("Power", IntValue(65)),
				NewStat("Hardness", IntValue(8)),
				NewStat("Element", StringValue("Fire")),
				NewStat("Origin", StringValue("Mountains")),
			},
			Type: CardTypeFire,
		},
		{
			ID:        "sample-aqua-serpent",
			DisplayID: 23,
			Title:     "Aqua Serpent",
			Description: "A mystical water creature that flows like liquid between dimensions, " +
				"able to control currents and tides.",
			ImageURL: "https://images.unsplash.com/photo-1580394629311-9a29113a5166?q=80&w=300",
			Stats: []Stat{
				NewStat("Speed", IntValue(90)),
				NewStat("Fluidity", IntValue(100)),
				NewStat("Element", StringValue("Water")),
				NewStat("Rarity", StringValue("Very Rare")),
			},
			Type: CardTypeWater,
		},
	}
}
