package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/ledger"
)

var t0 = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func rec(id, item, op string, qty int64, ts time.Time) *entity.TransactionRecord {
	return &entity.TransactionRecord{
		ID:        id,
		ProjectID: "p1",
		ItemName:  item,
		Operation: op,
		Quantity:  decimal.NewFromInt(qty),
		Timestamp: ts,
	}
}

func TestSnapshot_FormulaCompleta(t *testing.T) {
	records := []*entity.TransactionRecord{
		rec("a", "Cemento", entity.OperationIN, 100, t0),
		rec("b", "Cemento", entity.OperationOUT, 30, t0.Add(time.Hour)),
		rec("c", "Cemento", entity.OperationAdjustIncrease, 5, t0.Add(2*time.Hour)),
		rec("d", "Cemento", entity.OperationAdjustDecrease, 2, t0.Add(3*time.Hour)),
	}
	snap := ledger.Snapshot("p1", "Cemento", records)

	assert.True(t, snap.IncomingTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, snap.OutgoingTotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, snap.IncreaseTotal.Equal(decimal.NewFromInt(5)))
	assert.True(t, snap.DecreaseTotal.Equal(decimal.NewFromInt(2)))
	// 100 - 30 + 5 - 2
	assert.True(t, snap.CurrentStock.Equal(decimal.NewFromInt(73)))
}

func TestSnapshot_IgnoraOtrosItemsYProyectos(t *testing.T) {
	otro := rec("x", "Arena", entity.OperationIN, 999, t0)
	otroProyecto := rec("y", "Cemento", entity.OperationIN, 999, t0)
	otroProyecto.ProjectID = "p2"
	records := []*entity.TransactionRecord{
		rec("a", "Cemento", entity.OperationIN, 50, t0),
		otro,
		otroProyecto,
	}
	snap := ledger.Snapshot("p1", "Cemento", records)
	assert.True(t, snap.CurrentStock.Equal(decimal.NewFromInt(50)))
}

func TestSnapshot_LecturaIdempotente(t *testing.T) {
	records := []*entity.TransactionRecord{
		rec("a", "Cemento", entity.OperationIN, 10, t0),
		rec("b", "Cemento", entity.OperationOUT, 4, t0.Add(time.Minute)),
	}
	first := ledger.Snapshot("p1", "Cemento", records)
	second := ledger.Snapshot("p1", "Cemento", records)
	assert.Equal(t, first, second, "dos lecturas sin escrituras deben ser idénticas")
}

func TestSnapshotExcluding_OmiteRegistroYSusAjustes(t *testing.T) {
	adj := rec("c", "Cemento", entity.OperationAdjustIncrease, 2, t0.Add(2*time.Hour))
	adj.ReferenceID = "b"
	records := []*entity.TransactionRecord{
		rec("a", "Cemento", entity.OperationIN, 20, t0),
		rec("b", "Cemento", entity.OperationOUT, 8, t0.Add(time.Hour)),
		adj,
	}
	// Sin la salida "b" ni su ajuste hijo: queda solo el IN 20
	snap := ledger.SnapshotExcluding("p1", "Cemento", records, "b")
	assert.True(t, snap.CurrentStock.Equal(decimal.NewFromInt(20)))
}

func TestSnapshotExcluding_OmiteLaCadenaCompletaDeAjustes(t *testing.T) {
	// b corrige a la salida "a"; c corrige al ajuste "b" (nieto de "a")
	child := rec("b", "Cemento", entity.OperationAdjustDecrease, 5, t0.Add(2*time.Hour))
	child.ReferenceID = "a"
	grandchild := rec("c", "Cemento", entity.OperationAdjustIncrease, 2, t0.Add(3*time.Hour))
	grandchild.ReferenceID = "b"
	records := []*entity.TransactionRecord{
		rec("x", "Cemento", entity.OperationIN, 20, t0),
		rec("a", "Cemento", entity.OperationOUT, 8, t0.Add(time.Hour)),
		child,
		grandchild,
	}

	// Sin "a" tampoco cuentan su hijo ni su nieto: queda solo el IN 20
	snap := ledger.SnapshotExcluding("p1", "Cemento", records, "a")
	assert.True(t, snap.CurrentStock.Equal(decimal.NewFromInt(20)))
	assert.True(t, snap.DecreaseTotal.IsZero())
	assert.True(t, snap.IncreaseTotal.IsZero())
}

func TestSnapshot_CantidadCanonicaNoLaCorregida(t *testing.T) {
	corrected := decimal.NewFromInt(70)
	in := rec("a", "Cemento", entity.OperationIN, 50, t0)
	in.CorrectedQuantity = &corrected
	adj := rec("b", "Cemento", entity.OperationAdjustIncrease, 20, t0.Add(time.Minute))
	adj.ReferenceID = "a"

	// La delta vive en el ajuste; la corregida es solo display.
	snap := ledger.Snapshot("p1", "Cemento", []*entity.TransactionRecord{in, adj})
	assert.True(t, snap.CurrentStock.Equal(decimal.NewFromInt(70)))
	assert.True(t, snap.IncomingTotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, snap.IncreaseTotal.Equal(decimal.NewFromInt(20)))
}
