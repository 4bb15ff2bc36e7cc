package gatesim

// An Endpoint names a gate's port: (gateId, port).
type Endpoint struct {
	Gate string
	Port string
}

// A Link is a directed connection from one gate's out-port to another
// gate's in-port (§3). Both endpoints must exist at creation time; the
// source port must be an Out port and the target port an In port.
type Link struct {
	ID     string
	Source Endpoint
	Target Endpoint
}
