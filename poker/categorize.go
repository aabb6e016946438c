package poker

// PocketCategory is a coarse preflop strength bucket for two pocket cards.
type PocketCategory uint8

const (
	CategoryTrash PocketCategory = iota
	CategoryWeak
	CategoryMedium
	CategoryStrong
	CategoryPremium
)

var pocketCategoryNames = [...]string{
	CategoryTrash:   "Trash",
	CategoryWeak:    "Weak",
	CategoryMedium:  "Medium",
	CategoryStrong:  "Strong",
	CategoryPremium: "Premium",
}

func (pc PocketCategory) String() string {
	if int(pc) < len(pocketCategoryNames) {
		return pocketCategoryNames[pc]
	}
	return "Unknown"
}

// CategorizePocket buckets two pocket cards:
//
//	Premium  JJ+, AK
//	Strong   TT, AQ, AJ
//	Medium   77-99, suited broadway
//	Weak     22-66, suited cards at most two ranks apart
//	Trash    everything else
func CategorizePocket(a, b Card) PocketCategory {
	hi, lo := a.Rank(), b.Rank()
	if lo > hi {
		hi, lo = lo, hi
	}
	suited := a.Suit() == b.Suit()

	if hi == lo {
		switch {
		case lo >= Jack:
			return CategoryPremium
		case lo == Ten:
			return CategoryStrong
		case lo >= Seven:
			return CategoryMedium
		case lo <= Six:
			return CategoryWeak
		}
	}

	switch {
	case hi == Ace && lo == King:
		return CategoryPremium
	case hi == Ace && lo >= Jack:
		return CategoryStrong
	case suited && lo >= Ten:
		return CategoryMedium
	case suited && hi-lo <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
