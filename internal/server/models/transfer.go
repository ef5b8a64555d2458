package models

// ItemError is one file an operation could not process.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"erro"`
}

// TransferResult is the reply to a move, copy or bulk delete. Items holds
// the files as they are after the operation; Status mirrors the HTTP status.
type TransferResult struct {
	Message string      `json:"mensagem"`
	Items   []File      `json:"itens"`
	Failed  []ItemError `json:"itens_com_erros"`
	Status  int         `json:"status"`
}

// FileIDsRequest is the body of the bulk file endpoints.
type FileIDsRequest struct {
	IDs           []string `json:"ids"`
	DestinationID string   `json:"pasta_destino_id,omitempty"`
}

// NameRequest is the body of create and rename calls.
type NameRequest struct {
	Name string `json:"nome"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"erro"`
}
