package entity

// TransportStatus describes whether outbound email can currently be attempted.
type TransportStatus struct {
	Available bool
	Account   string
}
