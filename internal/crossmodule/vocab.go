package crossmodule

// Fixed detection vocabularies. Matching is boolean substring membership
// against lowercased text; there is no scoring or weighting.

var jobKeywords = []string{
	"job offer", "job application", "interview", "position", "recruiter",
	"hiring", "resume", "cv attached", "candidate", "salary offer",
}

var travelKeywords = []string{
	"flight", "boarding pass", "itinerary", "hotel booking", "reservation",
	"check-in", "departure", "layover", "trip to", "travel confirmation",
}

var shoppingKeywords = []string{
	"order confirmation", "your order", "tracking number", "shipped",
	"delivery", "refund", "invoice", "receipt", "cart", "purchase",
}

// supportedDestinations is the city list destination extraction recognizes.
var supportedDestinations = []string{
	"Paris", "London", "Berlin", "Madrid", "Rome", "Amsterdam",
	"New York", "San Francisco", "Chicago", "Boston", "Seattle",
	"Tokyo", "Singapore", "Sydney", "Toronto", "Dubai",
}
