package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/obrasoft/almacen-api/internal/application/ledger"
	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/infrastructure/memory"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// clock simula el tiempo de pared para poder cruzar la ventana de edición.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock(t time.Time) *clock        { return &clock{t: t} }

func newProject(t *testing.T, store *memory.Store) *entity.Project {
	t.Helper()
	p := &entity.Project{Name: "Bodega Norte", CreatedAt: base, CreatedBy: "ana"}
	require.NoError(t, store.Projects().Create(p))
	return p
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestRecordMovement_EntradaYSalida(t *testing.T) {
	store := memory.NewStore()
	p := newProject(t, store)
	clk := newClock(base)
	uc := appledger.NewRecordMovementUseCase(store.TxRunner(), store.Projects(), clk.Now)

	in, err := uc.Record(context.Background(), appledger.MovementInput{
		ProjectID: p.ID,
		Actor:     "ana",
		ItemName:  "Cemento",
		Category:  "Materiales",
		Operation: entity.OperationIN,
		Quantity:  qty(100),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, int64(1), in.Seq)
	assert.Equal(t, base, in.Timestamp)

	clk.Advance(time.Hour)
	out, err := uc.Record(context.Background(), appledger.MovementInput{
		ProjectID:    p.ID,
		Actor:        "ana",
		ItemName:     "Cemento",
		Operation:    entity.OperationOUT,
		Quantity:     qty(30),
		Counterparty: "Frente A",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Seq)

	// El stock materializado refleja el plegado del libro
	stock, err := store.Stock().Get(p.ID, "Cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty(70)))
}

func TestRecordMovement_SalidaSinStockSuficiente(t *testing.T) {
	store := memory.NewStore()
	p := newProject(t, store)
	uc := appledger.NewRecordMovementUseCase(store.TxRunner(), store.Projects(), newClock(base).Now)

	_, err := uc.Record(context.Background(), appledger.MovementInput{
		ProjectID:    p.ID,
		ItemName:     "Cemento",
		Operation:    entity.OperationOUT,
		Quantity:     qty(1),
		Counterparty: "Frente A",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no deja rastro en el libro
	records, err := store.Records().ScanByProject(p.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordMovement_SalidaExactaDejaCero(t *testing.T) {
	store := memory.NewStore()
	p := newProject(t, store)
	uc := appledger.NewRecordMovementUseCase(store.TxRunner(), store.Projects(), newClock(base).Now)
	ctx := context.Background()

	_, err := uc.Record(ctx, appledger.MovementInput{
		ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationIN, Quantity: qty(10),
	})
	require.NoError(t, err)
	_, err = uc.Record(ctx, appledger.MovementInput{
		ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationOUT,
		Quantity: qty(10), Counterparty: "Frente A",
	})
	require.NoError(t, err)

	stock, err := store.Stock().Get(p.ID, "Cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

func TestRecordMovement_Validaciones(t *testing.T) {
	store := memory.NewStore()
	p := newProject(t, store)
	uc := appledger.NewRecordMovementUseCase(store.TxRunner(), store.Projects(), nil)
	ctx := context.Background()
	negShelf := -1

	cases := []struct {
		name  string
		input appledger.MovementInput
	}{
		{"operación desconocida", appledger.MovementInput{ProjectID: p.ID, ItemName: "Cemento", Operation: "TRANSFER", Quantity: qty(1)}},
		{"ajuste directo prohibido", appledger.MovementInput{ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationAdjustIncrease, Quantity: qty(1)}},
		{"cantidad cero", appledger.MovementInput{ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationIN, Quantity: decimal.Zero}},
		{"cantidad negativa", appledger.MovementInput{ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationIN, Quantity: qty(-5)}},
		{"ítem vacío", appledger.MovementInput{ProjectID: p.ID, Operation: entity.OperationIN, Quantity: qty(1)}},
		{"salida sin contraparte", appledger.MovementInput{ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationOUT, Quantity: qty(1)}},
		{"vida útil negativa", appledger.MovementInput{ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationIN, Quantity: qty(1), ShelfLifeDays: &negShelf}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Record(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_ProyectoInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := appledger.NewRecordMovementUseCase(store.TxRunner(), store.Projects(), nil)

	_, err := uc.Record(context.Background(), appledger.MovementInput{
		ProjectID: "no-existe", ItemName: "Cemento", Operation: entity.OperationIN, Quantity: qty(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_StockPorItemIndependiente(t *testing.T) {
	store := memory.NewStore()
	p := newProject(t, store)
	uc := appledger.NewRecordMovementUseCase(store.TxRunner(), store.Projects(), newClock(base).Now)
	ctx := context.Background()

	_, err := uc.Record(ctx, appledger.MovementInput{
		ProjectID: p.ID, ItemName: "Cemento", Operation: entity.OperationIN, Quantity: qty(100),
	})
	require.NoError(t, err)

	// La arena no hereda el stock del cemento
	_, err = uc.Record(ctx, appledger.MovementInput{
		ProjectID: p.ID, ItemName: "Arena", Operation: entity.OperationOUT,
		Quantity: qty(1), Counterparty: "Frente A",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
