package services

import (
	"strconv"
	"strings"
)

// Extract liest einen Wert aus den Staging-Feldern anhand eines Pfads in
// Punktnotation (z.B. "entity_description.main_title"). Abwesenheit ist
// Daten, kein Fehler: fehlt ein Segment, ist der Wert nil, ein leerer
// String oder ein leeres Array, kommt (nil, false) zurück. Es wird nie
// gepanict.
//
// Gesucht wird zuerst die von dlt geflachte Spalte (Punkte als "__"),
// danach per Traversierung durch verschachtelte Maps. Das letzte Segment
// darf einen Listenindex tragen ("isbn_list[0]").
func Extract(fields map[string]any, path string) (any, bool) {
	if len(fields) == 0 || path == "" {
		return nil, false
	}

	path, index := splitIndex(path)

	v, ok := fields[strings.ReplaceAll(path, ".", "__")]
	if !ok {
		v, ok = traverse(fields, strings.Split(path, "."))
	}
	if !ok {
		return nil, false
	}
	if index >= 0 {
		arr, ok := v.([]any)
		if !ok || index >= len(arr) {
			return nil, false
		}
		v = arr[index]
	}
	return present(v)
}

// ExtractFirst probiert mehrere Pfade in Reihenfolge und liefert den
// ersten vorhandenen Wert. Damit tolerieren Mappings Schema-Drift
// zwischen NVA-Ergebnisformen (primärer Pfad, dann Alternative).
func ExtractFirst(fields map[string]any, paths ...string) (any, bool) {
	for _, p := range paths {
		if v, ok := Extract(fields, p); ok {
			return v, true
		}
	}
	return nil, false
}

// splitIndex trennt einen Indexsuffix "[n]" vom Pfad ab; -1 ohne Index.
func splitIndex(path string) (string, int) {
	if !strings.HasSuffix(path, "]") {
		return path, -1
	}
	open := strings.LastIndexByte(path, '[')
	if open < 0 {
		return path, -1
	}
	n, err := strconv.Atoi(path[open+1 : len(path)-1])
	if err != nil || n < 0 {
		return path, -1
	}
	return path[:open], n
}

// traverse steigt segmentweise durch verschachtelte Maps ab.
func traverse(fields map[string]any, segments []string) (any, bool) {
	var current any = fields
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// present meldet einen Wert als abwesend, wenn er nil, leer oder ein
// leeres Array ist.
func present(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, false
		}
	case []any:
		if len(t) == 0 {
			return nil, false
		}
	}
	return v, true
}
