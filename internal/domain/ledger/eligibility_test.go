package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/ledger"
)

func TestCheckEligibility_VentanaExpirada(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 50, t0)
	now := t0.Add(25 * time.Hour)

	res := ledger.CheckEligibility(in, []*entity.TransactionRecord{in}, now, ledger.EditWindow)
	assert.Equal(t, ledger.StatusExpired, res.Status)
}

func TestCheckEligibility_JustoDentroDeLaVentana(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 50, t0)
	// Exactamente 24h sigue siendo editable; la ventana es inclusiva.
	res := ledger.CheckEligibility(in, []*entity.TransactionRecord{in}, t0.Add(24*time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusEditable, res.Status)
}

func TestCheckEligibility_EntradaProtegidaPorSalidaPosterior(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 100, t0)
	out := rec("b", "Cemento", entity.OperationOUT, 30, t0.Add(time.Hour))
	records := []*entity.TransactionRecord{in, out}

	res := ledger.CheckEligibility(in, records, t0.Add(2*time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusProtected, res.Status)
}

func TestCheckEligibility_SalidaNoSeProtege(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 100, t0)
	out := rec("b", "Cemento", entity.OperationOUT, 30, t0.Add(time.Hour))
	later := rec("c", "Cemento", entity.OperationOUT, 10, t0.Add(2*time.Hour))
	records := []*entity.TransactionRecord{in, out, later}

	// La protección solo aplica a entradas; las salidas siempre reportan
	// su disponible.
	res := ledger.CheckEligibility(out, records, t0.Add(3*time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusEditable, res.Status)
	require.NotNil(t, res.Available)
}

func TestCheckEligibility_DisponibleParaSalida(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 10, t0)
	out := rec("b", "Cemento", entity.OperationOUT, 10, t0.Add(time.Hour))
	records := []*entity.TransactionRecord{in, out}

	res := ledger.CheckEligibility(out, records, t0.Add(2*time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusEditable, res.Status)
	require.NotNil(t, res.Available)
	// Excluyendo la propia salida queda el IN 10 completo.
	assert.True(t, res.Available.Equal(decimal.NewFromInt(10)))
}

func TestCheckEligibility_SalidaEnElMismoInstanteNoProtege(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 10, t0)
	out := rec("b", "Cemento", entity.OperationOUT, 5, t0)
	records := []*entity.TransactionRecord{in, out}

	// "Posterior" es estrictamente posterior: misma marca de tiempo no bloquea.
	res := ledger.CheckEligibility(in, records, t0.Add(time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusEditable, res.Status)
}

func TestCheckEligibility_LaCadenaDeAjustesPropiaNoProtege(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 50, t0)
	// Corrección a la baja de "a", luego corrección al alza de ese ajuste:
	// el nieto es un ADJUST_DECREASE posterior pero sigue siendo contribución de "a"
	child := rec("b", "Cemento", entity.OperationAdjustDecrease, 10, t0.Add(time.Hour))
	child.ReferenceID = "a"
	grandchild := rec("c", "Cemento", entity.OperationAdjustDecrease, 2, t0.Add(2*time.Hour))
	grandchild.ReferenceID = "b"
	records := []*entity.TransactionRecord{in, child, grandchild}

	res := ledger.CheckEligibility(in, records, t0.Add(3*time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusEditable, res.Status)
}

func TestCheckEligibility_SalidaDeOtroItemNoProtege(t *testing.T) {
	in := rec("a", "Cemento", entity.OperationIN, 10, t0)
	out := rec("b", "Arena", entity.OperationOUT, 5, t0.Add(time.Hour))
	records := []*entity.TransactionRecord{in, out}

	res := ledger.CheckEligibility(in, records, t0.Add(2*time.Hour), ledger.EditWindow)
	assert.Equal(t, ledger.StatusEditable, res.Status)
}
