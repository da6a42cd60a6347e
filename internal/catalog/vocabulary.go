package catalog

// Fixed vocabularies the generator samples from.
var (
	countries = []string{
		"Japan", "Indonesia", "Switzerland", "Spain", "Costa Rica", "Thailand", "India", "Greece",
		"Mexico", "Italy", "Portugal", "Norway", "South Africa", "Morocco", "Peru", "New Zealand",
		"Iceland", "France", "Canada", "Australia", "Brazil", "Nepal", "Vietnam", "Turkey", "Bhutan",
		"Kenya", "Argentina", "Finland", "Egypt",
	}

	cities = map[string][]string{
		"Japan":       {"Kyoto", "Hakone", "Nara", "Okinawa", "Koyasan"},
		"Indonesia":   {"Ubud", "Canggu", "Uluwatu", "Sidemen", "Amed"},
		"Switzerland": {"Zermatt", "Interlaken", "Lucerne", "Grindelwald", "Verbier"},
		"Spain":       {"Seville", "Ibiza", "Mallorca", "Granada", "Lanzarote"},
		"Costa Rica":  {"Nosara", "Santa Teresa", "Tamarindo", "Arenal", "Puerto Viejo"},
		"Thailand":    {"Koh Samui", "Chiang Mai", "Phuket", "Pai", "Koh Phangan"},
		"India":       {"Rishikesh", "Goa", "Kerala", "Dharamshala", "Varanasi"},
		"Greece":      {"Santorini", "Crete", "Mykonos", "Naxos", "Paros"},
		"Mexico":      {"Tulum", "Sayulita", "Oaxaca", "Holbox", "San Miguel de Allende"},
		"Italy":       {"Tuscany", "Amalfi", "Puglia", "Sicily", "Dolomites"},
		"Nepal":       {"Kathmandu", "Pokhara", "Lumbini", "Mustang"},
		"Bhutan":      {"Paro", "Thimphu", "Punakha"},
		"Morocco":     {"Marrakech", "Essaouira", "Sahara Desert", "Atlas Mountains"},
	}

	// fallbackCity is used for countries missing from the city table
	fallbackCity = "Capital City"

	adjectives = []string{
		"Serene", "Mystical", "Healing", "Radiant", "Deep", "Pure", "Sacred", "Transformative",
		"Silent", "Lush", "Ancient", "Modern", "Dynamic", "Floating", "Hidden", "Celestial",
		"Earthy", "Primal", "Luminous", "Sublime", "Infinite", "Wild", "Peaceful", "Vibrant",
	}

	themes = []string{
		"Soul Journey", "Wellness Immersion", "Spirit Awakening", "Zen Path", "Nature Reconnect",
		"Flow State", "Inner Peace", "Detox Escape", "Yoga Flow", "Mindfulness Stay", "Heart Opening",
		"Energy Clearing", "Primal Wisdom", "Conscious Living", "Sacred Space",
	}
)

// Countries returns the country vocabulary
func Countries() []string {
	out := make([]string, len(countries))
	copy(out, countries)
	return out
}

// CitiesFor returns the city list for a country, falling back to a single placeholder city
func CitiesFor(country string) []string {
	if list, ok := cities[country]; ok {
		return list
	}
	return []string{fallbackCity}
}
