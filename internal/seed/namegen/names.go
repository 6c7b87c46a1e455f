package namegen

// Town name components - first word + landform combinations.
var townFirstWords = []string{
	"Cedar", "Maple", "Birch", "Alder", "Willow",
	"Juniper", "Aspen", "Hazel", "Rowan", "Laurel",
	"Fox", "Heron", "Crane", "Otter", "Stone",
	"Mill", "Elm", "Oak", "Fern", "Clover",
}

var townSecondWords = []string{
	"Hollow", "Falls", "Ridge", "Creek", "Glen",
	"Meadow", "Crossing", "Landing", "Grove", "Point",
	"Haven", "Bluff", "Fields", "Bend", "Cove",
	"Vale", "Springs", "Gate", "Rise", "Corners",
}
