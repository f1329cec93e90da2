package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son recuperables:
// el caller presenta el motivo al usuario y permite otra entrada.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrRecordNotFound    = errors.New("registro no encontrado en el proyecto")
	ErrStoreUnavailable  = errors.New("almacén de registros no disponible")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Veredictos del motor de correcciones.
	ErrExpired         = errors.New("fuera de la ventana de edición")
	ErrProtected       = errors.New("protegido por salidas posteriores")
	ErrWouldUnderflow  = errors.New("la corrección excede el stock disponible")
	ErrWouldGoNegative = errors.New("la corrección dejaría stock negativo")

	// ErrNoChange no es un fallo: la cantidad enviada es igual a la actual
	// (éxito sin efecto). Se expone como sentinel para que el caller lo distinga.
	ErrNoChange = errors.New("sin cambios")
)
