package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/obrasoft/almacen-api/internal/application/dto"
	applledger "github.com/obrasoft/almacen-api/internal/application/ledger"
	"github.com/obrasoft/almacen-api/internal/domain"
)

// LedgerHandler maneja las peticiones HTTP del libro de movimientos
// (movimientos, snapshot, consultas, elegibilidad y correcciones).
type LedgerHandler struct {
	movement    *applledger.RecordMovementUseCase
	correction  *applledger.SubmitCorrectionUseCase
	eligibility *applledger.CheckEligibilityUseCase
	snapshot    *applledger.SnapshotUseCase
	query       *applledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	movement *applledger.RecordMovementUseCase,
	correction *applledger.SubmitCorrectionUseCase,
	eligibility *applledger.CheckEligibilityUseCase,
	snapshot *applledger.SnapshotUseCase,
	query *applledger.QueryUseCase,
) *LedgerHandler {
	return &LedgerHandler{
		movement:    movement,
		correction:  correction,
		eligibility: eligibility,
		snapshot:    snapshot,
		query:       query,
	}
}

// RecordMovement godoc
// @Summary      Registrar movimiento (IN/OUT)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del proyecto"
// @Param        body  body  dto.RecordMovementRequest  true  "item_name, operation (IN|OUT), quantity, counterparty (OUT)"
// @Success      201   {object}  dto.TransactionRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.movement.Record(c.Context(), applledger.MovementInput{
		ProjectID:     c.Params("id"),
		Actor:         GetActorName(c),
		ItemName:      in.ItemName,
		Category:      in.Category,
		Operation:     in.Operation,
		Quantity:      in.Quantity,
		Counterparty:  in.Counterparty,
		Notes:         in.Notes,
		ShelfLifeDays: in.ShelfLifeDays,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransactionRecord(rec))
}

// GetSnapshot godoc
// @Summary      Stock actual de un ítem (vista derivada del libro)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del proyecto"
// @Param        item  query  string  true  "Nombre del ítem"
// @Success      200   {object}  dto.StockSnapshotDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/snapshot [get]
func (h *LedgerHandler) GetSnapshot(c *fiber.Ctx) error {
	snap, err := h.snapshot.Snapshot(c.Params("id"), c.Query("item"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.FromStockSnapshot(snap))
}

// QueryRecords godoc
// @Summary      Consulta filtrada del libro con agregados
// @Description  Filtros AND-combinados; date_to se extiende a las 23:59:59 del día.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del proyecto"
// @Param        date_from  query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        date_to    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        item       query  string  false  "Nombre del ítem"
// @Param        category   query  string  false  "Categoría"
// @Success      200  {object}  dto.QueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/records [get]
func (h *LedgerHandler) QueryRecords(c *fiber.Ctx) error {
	input := applledger.QueryInput{
		ProjectID: c.Params("id"),
		ItemName:  c.Query("item"),
		Category:  c.Query("category"),
	}
	var err error
	if input.DateFrom, err = parseDate(c.Query("date_from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date_from: formato esperado YYYY-MM-DD"})
	}
	if input.DateTo, err = parseDate(c.Query("date_to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date_to: formato esperado YYYY-MM-DD"})
	}

	res, err := h.query.Query(input)
	if err != nil {
		return ledgerError(c, err)
	}
	missing := make([]string, 0, len(res.MissingDates))
	for _, d := range res.MissingDates {
		missing = append(missing, d.Format("2006-01-02"))
	}
	return c.JSON(dto.QueryResponse{
		Records:      dto.FromTransactionRecords(res.Records),
		Aggregate:    dto.FromReportTotals(res.Totals),
		MissingDates: missing,
	})
}

// ListModifications godoc
// @Summary      Pista de auditoría del proyecto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/projects/{id}/modifications [get]
func (h *LedgerHandler) ListModifications(c *fiber.Ctx) error {
	mods, err := h.query.ListModifications(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.ModificationRecordDTO, 0, len(mods))
	for _, m := range mods {
		out = append(out, dto.FromModificationRecord(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "modifications": out})
}

// CheckEligibility godoc
// @Summary      ¿Puede corregirse aún este registro?
// @Description  Devuelve un código de motivo (ok, expired, protected_by_later_outflow)
//	y, para salidas editables, la cota superior de la nueva cantidad.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.EligibilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/records/{id}/eligibility [get]
func (h *LedgerHandler) CheckEligibility(c *fiber.Ctx) error {
	view, err := h.eligibility.Check(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.EligibilityResponse{
		RecordID:  view.Record.ID,
		Status:    string(view.Result.Status),
		Available: view.Result.Available,
	})
}

// SubmitCorrection godoc
// @Summary      Corregir la cantidad de un registro
// @Description  Agrega una entrada de auditoría y un registro de ajuste; nunca borra historia.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del registro original"
// @Param        body  body  dto.CorrectionRequest  true  "new_quantity, reason, notes"
// @Success      201   {object}  dto.ModificationRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/records/{id}/corrections [post]
func (h *LedgerHandler) SubmitCorrection(c *fiber.Ctx) error {
	var in dto.CorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mod, err := h.correction.Submit(c.Context(), applledger.CorrectionInput{
		RecordID:    c.Params("id"),
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		Actor:       GetActorName(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoChange) {
			// Éxito sin efecto: la cantidad enviada es igual a la actual
			return c.JSON(fiber.Map{"code": "NO_CHANGE", "message": "la cantidad no cambió; nada que corregir"})
		}
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromModificationRecord(mod))
}

// ledgerError mapea los errores de dominio a respuestas HTTP con código de
// motivo específico; ninguno es fatal para el proceso.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	case errors.Is(err, domain.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RECORD_NOT_FOUND", Message: "registro no encontrado en el proyecto"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
	case errors.Is(err, domain.ErrExpired):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXPIRED", Message: "fuera de la ventana de edición de 24 horas"})
	case errors.Is(err, domain.ErrProtected):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROTECTED_BY_LATER_OUTFLOW", Message: "hay salidas posteriores que dependen de esta entrada"})
	case errors.Is(err, domain.ErrWouldUnderflow):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WOULD_UNDERFLOW", Message: "la nueva cantidad excede el stock disponible"})
	case errors.Is(err, domain.ErrWouldGoNegative):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WOULD_GO_NEGATIVE", Message: "la corrección dejaría stock negativo"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén de registros no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseDate interpreta una fecha calendario YYYY-MM-DD; vacío devuelve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
