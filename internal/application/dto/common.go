package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteInfo informa al cliente en qué backend terminó una escritura.
// Warning viene no vacío cuando una escritura remota cayó al almacenamiento
// local: el cliente debe mostrarlo, los datos divergieron.
type WriteInfo struct {
	Backend string `json:"backend"` // remote | local
	Warning string `json:"warning,omitempty"`
}
