package recommend

import "strings"

// Bucket identifies a recommendation category.
type Bucket string

const (
	BucketTopCards      Bucket = "topCards"
	BucketCreatures     Bucket = "creatures"
	BucketInstants      Bucket = "instants"
	BucketSorceries     Bucket = "sorceries"
	BucketArtifacts     Bucket = "artifacts"
	BucketEnchantments  Bucket = "enchantments"
	BucketPlaneswalkers Bucket = "planeswalkers"
	BucketLands         Bucket = "lands"
	BucketUnrecognized  Bucket = "unrecognized"
)

// categoryTable maps header substrings to buckets. Order matters: the first
// row contained in a lowercased header wins.
var categoryTable = []struct {
	match  string
	bucket Bucket
}{
	{"top cards", BucketTopCards},
	{"creature", BucketCreatures},
	{"instant", BucketInstants},
	{"sorcer", BucketSorceries}, // "Sorcery" and "Sorceries"
	{"artifact", BucketArtifacts},
	{"enchantment", BucketEnchantments},
	{"planeswalker", BucketPlaneswalkers},
	{"land", BucketLands},
}

// Classify returns the bucket for a provider list header.
func Classify(header string) Bucket {
	h := strings.ToLower(header)
	for _, row := range categoryTable {
		if strings.Contains(h, row.match) {
			return row.bucket
		}
	}
	return BucketUnrecognized
}

func newRecommendations(commander string) Recommendations {
	return Recommendations{
		Commander:     commander,
		TopCards:      []Card{},
		Creatures:     []Card{},
		Instants:      []Card{},
		Sorceries:     []Card{},
		Artifacts:     []Card{},
		Enchantments:  []Card{},
		Planeswalkers: []Card{},
		Lands:         []Card{},
		Unrecognized:  []CategoryList{},
	}
}

// place stores cards in bucket b. A later list for the same bucket replaces
// the earlier one.
func (r *Recommendations) place(b Bucket, header string, cards []Card) {
	switch b {
	case BucketTopCards:
		r.TopCards = cards
	case BucketCreatures:
		r.Creatures = cards
	case BucketInstants:
		r.Instants = cards
	case BucketSorceries:
		r.Sorceries = cards
	case BucketArtifacts:
		r.Artifacts = cards
	case BucketEnchantments:
		r.Enchantments = cards
	case BucketPlaneswalkers:
		r.Planeswalkers = cards
	case BucketLands:
		r.Lands = cards
	default:
		r.Unrecognized = append(r.Unrecognized, CategoryList{Header: header, Cards: cards})
	}
}
