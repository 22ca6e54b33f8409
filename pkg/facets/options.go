package facets

// Option pairs a display label with the value a host passes back into the
// toggle and setter operations.
type Option struct {
	Label string
	Value string
}

// CategoryOptions lists the categories a host can render as checkboxes.
func CategoryOptions() []Option {
	return []Option{
		{Label: "Technology", Value: "technology"},
		{Label: "Travel", Value: "travel"},
		{Label: "Fitness", Value: "fitness"},
		{Label: "Food", Value: "food"},
		{Label: "Art", Value: "art"},
		{Label: "Music", Value: "music"},
	}
}

// AuthorOptions lists the authors a host can render as checkboxes.
func AuthorOptions() []Option {
	return []Option{
		{Label: "Sarah Chen", Value: "Sarah Chen"},
		{Label: "Marcus Rodriguez", Value: "Marcus Rodriguez"},
		{Label: "Dr. Emily Watson", Value: "Dr. Emily Watson"},
		{Label: "Chef Maria Santos", Value: "Chef Maria Santos"},
	}
}

// TagOptions lists the tags a host can render as checkboxes.
func TagOptions() []Option {
	return []Option{
		{Label: "SEO", Value: "SEO"},
		{Label: "AI", Value: "AI"},
		{Label: "Photography", Value: "Photography"},
		{Label: "Monetization", Value: "Monetization"},
		{Label: "Mindfulness", Value: "Mindfulness"},
	}
}

// DateOptions lists the date buckets with their display labels.
func DateOptions() []Option {
	return []Option{
		{Label: "Any time", Value: string(DateAny)},
		{Label: "Today", Value: string(DateToday)},
		{Label: "This week", Value: string(DateWeek)},
		{Label: "This month", Value: string(DateMonth)},
		{Label: "This year", Value: string(DateYear)},
	}
}

// PopularityOptions lists the popularity buckets with their display labels.
func PopularityOptions() []Option {
	return []Option{
		{Label: "Any", Value: string(PopularityAny)},
		{Label: "Most viewed", Value: string(PopularityViews)},
		{Label: "Most liked", Value: string(PopularityLikes)},
		{Label: "Most commented", Value: string(PopularityComments)},
	}
}
