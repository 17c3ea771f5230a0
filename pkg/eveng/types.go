package eveng

// Node is one device in a lab, keyed by its provider-assigned node ID.
type Node struct {
	Name string `json:"name"`
}

// Interface is one interface on a node, keyed by its local interface ID
// within an interface class ("ethernet", "serial").
type Interface struct {
	Name      string `json:"name"`
	NetworkID int    `json:"network_id"`
}

// envelope is the response wrapper every EVE-NG API endpoint returns.
type envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
