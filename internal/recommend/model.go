package recommend

// Card is one recommendation inside a category bucket.
type Card struct {
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Inclusion float64 `json:"inclusion"`
	Synergy   float64 `json:"synergy"`
	Sanitized string  `json:"sanitized"`
}

// CategoryList is a provider card list that matched no known category.
type CategoryList struct {
	Header string `json:"header"`
	Cards  []Card `json:"cards"`
}

// Recommendations groups a commander's EDHREC page by category.
type Recommendations struct {
	Commander     string         `json:"commander"`
	TopCards      []Card         `json:"topCards"`
	Creatures     []Card         `json:"creatures"`
	Instants      []Card         `json:"instants"`
	Sorceries     []Card         `json:"sorceries"`
	Artifacts     []Card         `json:"artifacts"`
	Enchantments  []Card         `json:"enchantments"`
	Planeswalkers []Card         `json:"planeswalkers"`
	Lands         []Card         `json:"lands"`
	Unrecognized  []CategoryList `json:"unrecognized"`
}

// ColorCard is one entry of a color identity's top-card list.
type ColorCard struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Sanitized string `json:"sanitized"`
	NumDecks  int    `json:"num_decks"`
}

// ColorRecommendations is the top-card list for a color identity.
type ColorRecommendations struct {
	Colors []string    `json:"colors"`
	Key    string      `json:"key"`
	Cards  []ColorCard `json:"cards"`
}

type edhrecPage struct {
	Container struct {
		JSONDict struct {
			CardLists []edhrecList `json:"cardlists"`
		} `json:"json_dict"`
	} `json:"container"`
}

type edhrecList struct {
	Header    string       `json:"header"`
	CardViews []edhrecCard `json:"cardviews"`
}

type edhrecCard struct {
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Sanitized string  `json:"sanitized"`
	Inclusion float64 `json:"inclusion"`
	Synergy   float64 `json:"synergy"`
	NumDecks  int     `json:"num_decks"`
}
