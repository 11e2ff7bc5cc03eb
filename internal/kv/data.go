package kv

type slot struct {
	key   string
	value []byte
}

func bySlotKeys(a, b interface{}) bool {
	return a.(*slot).key < b.(*slot).key
}

// persistedSlot is the on-disk shape of a slot. V holds the value as text
// the same way a browser local storage slot would; H is its xxhash64.
type persistedSlot struct {
	K string `json:"k"`
	V string `json:"v"`
	H uint64 `json:"h"`
}

// model - data model
type model struct {
	Slots []persistedSlot `json:"slots"`
}
