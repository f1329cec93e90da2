package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
)

// ReportTotals son los contadores agregados de una secuencia filtrada.
// Las entradas agrupan IN + ADJUST_INCREASE; las salidas OUT + ADJUST_DECREASE.
type ReportTotals struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	Net      decimal.Decimal // TotalIn - TotalOut
	InCount  int
	OutCount int
}

// Aggregate suma por operación sobre la secuencia filtrada, con cantidades canónicas
// (en el listado crudo cada corrección aparece como su propia fila de ajuste).
func Aggregate(records []*entity.TransactionRecord) ReportTotals {
	t := ReportTotals{
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
		Net:      decimal.Zero,
	}
	for _, r := range records {
		switch {
		case r.IsInflow():
			t.TotalIn = t.TotalIn.Add(r.Quantity)
			t.InCount++
		case r.IsOutflow():
			t.TotalOut = t.TotalOut.Add(r.Quantity)
			t.OutCount++
		}
	}
	t.Net = t.TotalIn.Sub(t.TotalOut)
	return t
}

// MissingDates devuelve las fechas calendario estrictamente entre fechas
// observadas consecutivas con hueco mayor a un día. Es solo para resaltar
// discontinuidades en reportes, no valida nada.
func MissingDates(records []*entity.TransactionRecord) []time.Time {
	seen := make(map[time.Time]struct{}, len(records))
	for _, r := range records {
		d := truncateDay(r.Timestamp)
		seen[d] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var missing []time.Time
	for i := 1; i < len(days); i++ {
		for d := days[i-1].AddDate(0, 0, 1); d.Before(days[i]); d = d.AddDate(0, 0, 1) {
			missing = append(missing, d)
		}
	}
	return missing
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
