// Package schema holds the static field layout of both datasets.
package schema

// PrimaryColumns is how many leading fields the table view shows.
const PrimaryColumns = 4

type Field struct {
	Key   string
	Label string
	Kind  Kind
}

// Schema is an immutable ordered list of fields for one dataset.
type Schema struct {
	dataset Dataset
	fields  []Field
	index   map[string]int
}

func newSchema(d Dataset, fields []Field) *Schema {
	s := &Schema{
		dataset: d,
		fields:  fields,
		index:   make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if _, dup := s.index[f.Key]; dup {
			panic("duplicate field key " + f.Key + " in " + string(d) + " schema")
		}
		s.index[f.Key] = i
	}

	return s
}

func (s *Schema) Dataset() Dataset {
	return s.dataset
}

func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields in order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key
	}
	return keys
}

func (s *Schema) Field(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Primary returns the fields shown as table columns.
func (s *Schema) Primary() []Field {
	n := PrimaryColumns
	if len(s.fields) < n {
		n = len(s.fields)
	}

	out := make([]Field, n)
	copy(out, s.fields[:n])
	return out
}

func (s *Schema) StatusKey() string {
	return s.dataset.StatusKey()
}

var registry = map[Dataset]*Schema{
	Followup: newSchema(Followup, []Field{
		{Key: "clientName", Label: "Client Name", Kind: Text},
		{Key: "contactNumber", Label: "Contact Number", Kind: Phone},
		{Key: "leadSource", Label: "Lead Source", Kind: Text},
		{Key: "type", Label: "Type (Buy/Sell/Rent)", Kind: Text},
		{Key: "propertyDetails", Label: "Property Requirement / Listing Details", Kind: Multiline},
		{Key: "date", Label: "Date", Kind: Date},
		{Key: "time", Label: "Time", Kind: Time},
		{Key: "mode", Label: "Mode (Call/Visit/WhatsApp)", Kind: Text},
		{Key: "followUpSummary", Label: "Follow-Up Summary", Kind: Multiline},
		{Key: "clientResponse", Label: "Client Response", Kind: Multiline},
		{Key: "nextAction", Label: "Next Action", Kind: Multiline},
		{Key: "nextFollowUpDate", Label: "Next Follow-Up Date", Kind: Date},
		{Key: "currentStatus", Label: "Current Status", Kind: Text},
		{Key: "reasonIfLost", Label: "Reason if Lost", Kind: Multiline},
		{Key: "potentialCommission", Label: "Potential Commission", Kind: Number},
		{Key: "expectedClosureDate", Label: "Expected Closure Date", Kind: Date},
	}),
	Land: newSchema(Land, []Field{
		{Key: "landId", Label: "Land ID", Kind: Text},
		{Key: "location", Label: "Location / Survey No", Kind: Text},
		{Key: "landArea", Label: "Land Area", Kind: Text},
		{Key: "source", Label: "Source (Broker / Seller / Buyer Requested)", Kind: Text},
		{Key: "brokerName", Label: "Broker Name", Kind: Text},
		{Key: "sellerName", Label: "Seller Name", Kind: Text},
		{Key: "buyerName", Label: "Buyer Name", Kind: Text},
		{Key: "quotedPrice", Label: "Quoted Price", Kind: Number},
		{Key: "expectedCommission", Label: "Expected Commission", Kind: Number},
		{Key: "status", Label: "Status", Kind: Text},
		{Key: "remarks", Label: "Remarks", Kind: Multiline},
		{Key: "visitors", Label: "Visitors", Kind: Text},
		{Key: "visitDate", Label: "Visit Date", Kind: Date},
		{Key: "visitOutcome", Label: "Visit Outcome", Kind: Multiline},
	}),
}

// For returns the schema of d. It panics on an unknown dataset; callers
// parse user input with ParseDataset first.
func For(d Dataset) *Schema {
	s, ok := registry[d]
	if !ok {
		panic("no schema registered for dataset " + string(d))
	}
	return s
}
