package cards

// Card is the normalized card record produced from a Scryfall response.
// Optional fields the provider omits stay nil rather than defaulted.
type Card struct {
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	ScryfallID string   `json:"scryfallId"`
	Type       string   `json:"type"`
	ManaCost   *string  `json:"manaCost"`
	Colors     []string `json:"colors"`
	OracleText *string  `json:"oracleText,omitempty"`
}

// Commander is a commander-eligible search hit.
type Commander struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
	Image  string   `json:"image"`
}

// scryfallCard is the subset of the Scryfall card object we read.
type scryfallCard struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TypeLine      string         `json:"type_line"`
	ManaCost      *string        `json:"mana_cost"`
	Colors        []string       `json:"colors"`
	ColorIdentity []string       `json:"color_identity"`
	OracleText    *string        `json:"oracle_text"`
	ImageURIs     *imageURIs     `json:"image_uris"`
	CardFaces     []scryfallFace `json:"card_faces"`
}

type scryfallFace struct {
	ImageURIs *imageURIs `json:"image_uris"`
}

type imageURIs struct {
	Normal string `json:"normal"`
}

type scryfallList struct {
	Data     []scryfallCard `json:"data"`
	HasMore  bool           `json:"has_more"`
	NextPage string         `json:"next_page"`
}

type scryfallCatalog struct {
	Data []string `json:"data"`
}

// normalize maps a provider record onto Card. Multi-faced cards without a
// top-level image fall back to the first face's image.
func normalize(raw scryfallCard) Card {
	c := Card{
		Name:       raw.Name,
		Image:      displayImage(raw),
		ScryfallID: raw.ID,
		Type:       raw.TypeLine,
		ManaCost:   raw.ManaCost,
		Colors:     raw.Colors,
		OracleText: raw.OracleText,
	}
	if c.Colors == nil {
		c.Colors = []string{}
	}
	return c
}

func displayImage(raw scryfallCard) string {
	if raw.ImageURIs != nil && raw.ImageURIs.Normal != "" {
		return raw.ImageURIs.Normal
	}
	if len(raw.CardFaces) > 0 && raw.CardFaces[0].ImageURIs != nil {
		return raw.CardFaces[0].ImageURIs.Normal
	}
	return ""
}
