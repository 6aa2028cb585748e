package domain

// BackendError é o corpo padronizado de erro devolvido pelo backend.
type BackendError struct {
	Message   string `json:"message,omitempty"`
	Status    int    `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	Path      string `json:"path,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
