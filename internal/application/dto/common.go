package dto

// ErrorResponse cuerpo de error HTTP con código de motivo específico,
// para que la UI pueda explicar exactamente por qué se rechazó la operación.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
