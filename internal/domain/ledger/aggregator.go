package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
)

// Snapshot pliega el libro de un ítem y devuelve su vista de stock derivada
// (servicio de dominio puro: mismo libro, mismo resultado).
// El pliegue usa siempre la cantidad canónica de cada registro: la cantidad
// corregida es solo presentación y la delta real vive en el registro de ajuste.
func Snapshot(projectID, itemName string, records []*entity.TransactionRecord) entity.StockSnapshot {
	return fold(projectID, itemName, records, "")
}

// SnapshotExcluding pliega el libro omitiendo la contribución completa de un
// registro: el registro mismo y toda su cadena de ajustes (los que lo
// referencian, los que referencian a esos, etc.). Responde "¿cuánto stock
// habría sin este registro?" para acotar correcciones de salidas.
func SnapshotExcluding(projectID, itemName string, records []*entity.TransactionRecord, excludedID string) entity.StockSnapshot {
	return fold(projectID, itemName, records, excludedID)
}

// contributionOf devuelve el registro raíz y todos sus descendientes por
// ReferenceID (cierre transitivo: un ajuste corregido genera ajustes de
// ajustes).
func contributionOf(records []*entity.TransactionRecord, rootID string) map[string]struct{} {
	set := map[string]struct{}{rootID: {}}
	for changed := true; changed; {
		changed = false
		for _, r := range records {
			if r.ReferenceID == "" {
				continue
			}
			if _, ok := set[r.ID]; ok {
				continue
			}
			if _, ok := set[r.ReferenceID]; ok {
				set[r.ID] = struct{}{}
				changed = true
			}
		}
	}
	return set
}

func fold(projectID, itemName string, records []*entity.TransactionRecord, excludedID string) entity.StockSnapshot {
	snap := entity.StockSnapshot{
		ProjectID:     projectID,
		ItemName:      itemName,
		IncomingTotal: decimal.Zero,
		OutgoingTotal: decimal.Zero,
		IncreaseTotal: decimal.Zero,
		DecreaseTotal: decimal.Zero,
		CurrentStock:  decimal.Zero,
	}
	var excluded map[string]struct{}
	if excludedID != "" {
		excluded = contributionOf(records, excludedID)
	}
	for _, r := range records {
		if r.ProjectID != projectID || r.ItemName != itemName {
			continue
		}
		if _, ok := excluded[r.ID]; ok {
			continue
		}
		switch r.Operation {
		case entity.OperationIN:
			snap.IncomingTotal = snap.IncomingTotal.Add(r.Quantity)
		case entity.OperationOUT:
			snap.OutgoingTotal = snap.OutgoingTotal.Add(r.Quantity)
		case entity.OperationAdjustIncrease:
			snap.IncreaseTotal = snap.IncreaseTotal.Add(r.Quantity)
		case entity.OperationAdjustDecrease:
			snap.DecreaseTotal = snap.DecreaseTotal.Add(r.Quantity)
		}
	}
	snap.CurrentStock = snap.IncomingTotal.
		Sub(snap.OutgoingTotal).
		Add(snap.IncreaseTotal).
		Sub(snap.DecreaseTotal)
	return snap
}
