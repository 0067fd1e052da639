package store

import "time"

// DefaultFormat is the format label given to decks created without one.
const DefaultFormat = "Commander"

// Deck is a deck header row.
type Deck struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Format    string    `gorm:"size:64;not null;default:Commander" json:"format"`
	Commander *string   `gorm:"size:255" json:"commander"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Deck) TableName() string { return "decks" }

// DeckCard is a membership row: one card name in one deck with a quantity.
// Uniqueness of (DeckID, CardName) is kept by the deck service, not the schema.
type DeckCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeckID    uint      `gorm:"not null;index:idx_deck_cards_deck_name,priority:1" json:"deck_id"`
	CardName  string    `gorm:"size:255;not null;index:idx_deck_cards_deck_name,priority:2" json:"card_name"`
	CardImage *string   `gorm:"size:1024" json:"card_image"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Deck *Deck `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (DeckCard) TableName() string { return "deck_cards" }
