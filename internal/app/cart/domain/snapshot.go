package domain

import "encoding/json"

// snapshotEntry is the stored wire shape of one line item. Fields are decoded
// into json.RawMessage first so a single malformed field poisons only its own
// entry, never the whole snapshot.
type snapshotEntry struct {
	ProductID json.RawMessage `json:"product_id"`
	Title     json.RawMessage `json:"title"`
	ImageRef  json.RawMessage `json:"image_ref"`
	Quantity  json.RawMessage `json:"quantity"`
}

// storedEntry is the shape written on save.
type storedEntry struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	ImageRef  string `json:"image_ref"`
	Quantity  int64  `json:"quantity"`
}

// EncodeSnapshot serializes the full item list to the single-slot JSON blob.
func EncodeSnapshot(items []LineItem) ([]byte, error) {
	entries := make([]storedEntry, len(items))
	for i, li := range items {
		entries[i] = storedEntry{
			ProductID: li.ProductID,
			Title:     li.Title,
			ImageRef:  li.ImageRef,
			Quantity:  li.Quantity,
		}
	}
	return json.Marshal(entries)
}

// DecodeSnapshot deserializes a stored blob, validating each entry field by
// field. Malformed entries (wrong-typed or missing product id, title or
// image ref, quantity outside bounds) are dropped; a blob that is not a JSON
// array at all degrades to an empty cart. Decoding never fails: a corrupt or
// tampered slot must yield a usable cart, not a crash.
//
// The number of entries dropped is returned so callers can log the loss.
func DecodeSnapshot(blob []byte) ([]LineItem, int) {
	if len(blob) == 0 {
		return []LineItem{}, 0
	}

	var entries []snapshotEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return []LineItem{}, 0
	}

	items := make([]LineItem, 0, len(entries))
	dropped := 0
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		li, ok := decodeEntry(e)
		if !ok || seen[li.ProductID] {
			dropped++
			continue
		}
		seen[li.ProductID] = true
		items = append(items, li)
	}

	return items, dropped
}

func decodeEntry(e snapshotEntry) (LineItem, bool) {
	var li LineItem

	if !decodeString(e.ProductID, &li.ProductID) || li.ProductID == "" {
		return li, false
	}
	if !decodeString(e.Title, &li.Title) {
		return li, false
	}
	if !decodeString(e.ImageRef, &li.ImageRef) {
		return li, false
	}
	if err := json.Unmarshal(e.Quantity, &li.Quantity); err != nil {
		return li, false
	}

	return li, li.Valid()
}

func decodeString(raw json.RawMessage, dst *string) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
