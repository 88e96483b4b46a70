package model

// WordPair is a pair of related words: villagers see Primary, knights see
// the Decoy instead. The dragon sees neither.
type WordPair struct {
	Primary string
	Decoy   string
}

// WordPairs is the curated list a round's secret pair is drawn from.
// Pairs are close enough that a knight can't tell they hold the decoy.
var WordPairs = []WordPair{
	// Animals
	{"elephant", "rhino"},
	{"giraffe", "camel"},
	{"penguin", "seagull"},
	{"dolphin", "shark"},
	{"butterfly", "dragonfly"},
	{"kangaroo", "wallaby"},
	{"octopus", "squid"},
	{"peacock", "flamingo"},
	{"hamster", "guinea pig"},
	{"tiger", "leopard"},
	{"eagle", "falcon"},
	{"rabbit", "hare"},
	{"monkey", "gorilla"},
	{"panda", "koala"},

	// Objects
	{"telescope", "binoculars"},
	{"umbrella", "raincoat"},
	{"guitar", "violin"},
	{"camera", "projector"},
	{"bicycle", "scooter"},
	{"lighthouse", "windmill"},
	{"compass", "map"},
	{"mirror", "window"},
	{"scissors", "knife"},
	{"backpack", "suitcase"},

	// Places
	{"museum", "gallery"},
	{"library", "bookstore"},
	{"restaurant", "cafe"},
	{"airport", "train station"},
	{"hospital", "pharmacy"},
	{"stadium", "arena"},
	{"beach", "lake"},
	{"mountain", "volcano"},
	{"forest", "jungle"},
	{"castle", "palace"},

	// Food and drink
	{"pizza", "lasagna"},
	{"sushi", "dumplings"},
	{"chocolate", "caramel"},
	{"coffee", "tea"},
	{"sandwich", "burger"},
	{"pancake", "waffle"},
	{"icecream", "milkshake"},
	{"cookie", "muffin"},
	{"soup", "stew"},

	// Activities
	{"swimming", "diving"},
	{"dancing", "gymnastics"},
	{"painting", "drawing"},
	{"cooking", "baking"},
	{"hiking", "camping"},
	{"fishing", "sailing"},
	{"skiing", "snowboarding"},
	{"surfing", "skateboarding"},

	// Weather and nature
	{"rainbow", "sunrise"},
	{"thunder", "lightning"},
	{"snowflake", "hailstone"},
	{"hurricane", "tornado"},
	{"earthquake", "avalanche"},
	{"meteor", "comet"},

	// Transportation
	{"airplane", "helicopter"},
	{"submarine", "sailboat"},
	{"spaceship", "rocket"},
	{"motorcycle", "moped"},
	{"train", "tram"},

	// Sports
	{"basketball", "volleyball"},
	{"soccer", "hockey"},
	{"tennis", "badminton"},
	{"baseball", "cricket"},
	{"bowling", "billiards"},
	{"boxing", "wrestling"},
	{"archery", "fencing"},

	// Professions
	{"teacher", "librarian"},
	{"doctor", "dentist"},
	{"chef", "baker"},
	{"pilot", "astronaut"},
	{"detective", "lawyer"},
	{"firefighter", "paramedic"},
	{"scientist", "engineer"},
	{"artist", "musician"},

	// Household items
	{"refrigerator", "freezer"},
	{"microwave", "toaster"},
	{"blender", "mixer"},
	{"vacuum", "broom"},
	{"pillow", "blanket"},
	{"curtain", "blinds"},
	{"lamp", "candle"},
}
