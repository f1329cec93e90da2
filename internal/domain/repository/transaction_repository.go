package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
)

// RecordFilter predicados AND-combinados para listar registros.
// Un límite ausente (nil/vacío) acepta todo; DateTo es inclusivo y el caller
// ya lo extiende al final del día.
type RecordFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	ItemName string
	Category string
}

// TransactionRecordRepository define el puerto de persistencia del libro de
// movimientos (append-only; la única mutación permitida es UpdateQuantity).
type TransactionRecordRepository interface {
	// Append persiste un registro nuevo asignando ID y secuencia; nunca escribe parcial.
	Append(record *entity.TransactionRecord) error
	// ScanByProject devuelve el libro completo del proyecto ordenado por
	// timestamp y, en empates, por secuencia de inserción.
	ScanByProject(projectID string) ([]*entity.TransactionRecord, error)
	// ScanByItem devuelve el libro de un ítem del proyecto en el mismo orden.
	ScanByItem(projectID, itemName string) ([]*entity.TransactionRecord, error)
	GetByID(id string) (*entity.TransactionRecord, error)
	// UpdateQuantity fija la cantidad corregida (solo display) de un registro.
	// Uso exclusivo del motor de correcciones. ErrRecordNotFound si el id no existe.
	UpdateQuantity(id string, newQuantity decimal.Decimal) error
	// List filtra el libro de un proyecto para el motor de reportes.
	List(projectID string, filter RecordFilter) ([]*entity.TransactionRecord, error)
}
