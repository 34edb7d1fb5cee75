// README: Route-intent decision extracted from a chat message.
package intent

// Decision says whether a message asks for a route. When IsRouteRequest is
// false the other fields are empty.
type Decision struct {
	IsRouteRequest bool   `json:"isRouteRequest"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	// AIReply is the clarifying question offering a cultural detour.
	AIReply string `json:"aiReply"`
}

// NotRouteRequest is the decision used whenever classification fails.
var NotRouteRequest = Decision{}
