package models

import "encoding/json"

// Document is the whole persisted state: one ordered array per entity kind.
// Every store variant reads and writes the document as a unit.
type Document struct {
	Users    []User    `json:"users"`
	Agents   []Agent   `json:"agents"`
	Wallets  []Wallet  `json:"wallets"`
	Logs     []Log     `json:"logs"`
	Commands []Command `json:"commands"`
	Actions  []Action  `json:"actions"`
}

// NewDocument returns a fresh document with empty arrays for every entity
// kind, matching the layout written on first start.
func NewDocument() *Document {
	return &Document{
		Users:    []User{},
		Agents:   []Agent{},
		Wallets:  []Wallet{},
		Logs:     []Log{},
		Commands: []Command{},
		Actions:  []Action{},
	}
}

// Clone returns a deep copy of the document via a JSON round-trip. The
// document is small (demo scale) so the cost is acceptable.
func (d *Document) Clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := NewDocument()
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PrependLog inserts entry at the head of the log list (newest-first).
func (d *Document) PrependLog(entry Log) {
	d.Logs = append([]Log{entry}, d.Logs...)
}
