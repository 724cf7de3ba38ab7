package dto

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    *int   `json:"line,omitempty"`    // línea culpable en operaciones multi-línea
	ItemID  string `json:"item_id,omitempty"` // SKU de la línea culpable
}
