package services

// IDAllocator vergibt fortlaufende PubIDs oberhalb des aktuellen
// Maximums in Cristin. Er ist lauf-lokal: bei einem fehlgeschlagenen
// Lauf wird er verworfen und beim nächsten frisch geseedet.
type IDAllocator struct {
	current int64
}

// NewIDAllocator erstellt einen Allocator; maxID ist die größte bereits
// vergebene PubID (0 bei leerer Tabelle).
func NewIDAllocator(maxID int64) *IDAllocator {
	return &IDAllocator{current: maxID}
}

// Next liefert die nächste PubID. Genau einmal pro akzeptierter Zeile
// aufrufen, erst nach der Duplikatsprüfung, damit die IDs der
// akzeptierten Menge lückenlos bleiben.
func (a *IDAllocator) Next() int64 {
	a.current++
	return a.current
}
