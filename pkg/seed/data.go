package seed

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Nancy", "Daniel",
	"Lisa", "Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra",
	"Aisha", "Wei", "Priya", "Omar", "Sofia", "Hiroshi", "Fatima", "Lucas",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Nguyen", "Kim", "Patel", "Chen", "Yamamoto", "Okafor", "Silva",
}

var cities = []string{
	"Seattle", "Portland", "Austin", "Denver", "Chicago", "Boston",
	"Atlanta", "Phoenix", "Miami", "Nashville", "Berlin", "Lisbon",
	"Toronto", "Melbourne", "Osaka", "Lagos", "Prague", "Bogota",
}

var companyAdjectives = []string{
	"Bright", "Quantum", "Solid", "Nimble", "Apex", "Vertex", "Cobalt",
	"Summit", "Prime", "Vivid", "Keystone", "Granite",
}

var companyNouns = []string{
	"Labs", "Systems", "Works", "Dynamics", "Industries", "Solutions",
	"Holdings", "Ventures", "Logic", "Forge",
}

var domains = []string{
	"example.com", "example.org", "example.net", "mail.test", "inbox.test",
}

var words = []string{
	"amber", "basin", "cedar", "delta", "ember", "fjord", "grove", "harbor",
	"inlet", "juniper", "kelp", "lagoon", "meadow", "north", "orchard",
	"pine", "quartz", "ridge", "summit", "thicket", "upland", "valley",
	"willow", "yarrow", "zephyr", "brook", "cliff", "dune", "estuary",
	"field", "glacier", "heath", "island", "jetty", "knoll", "ledge",
}
