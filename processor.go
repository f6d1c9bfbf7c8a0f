package depot

import (
	"reflect"
	"slices"
)

// ProcessorType returns the identity used to unregister processors of concrete type P.
func ProcessorType[P Processor]() reflect.Type {
	return reflect.TypeFor[P]()
}

func (r ProcessorRecord) Processor() Processor {
	return r.processor
}

// Bits returns the union of the processor's component bits.
func (r ProcessorRecord) Bits() Bits {
	return r.bits
}

// Order returns the component bits in the order the processor receives them.
func (r ProcessorRecord) Order() []Bits {
	return slices.Clone(r.order)
}

func (r ProcessorRecord) Priority() int {
	return r.priority
}

func (r ProcessorRecord) processorType() reflect.Type {
	return reflect.TypeOf(r.processor)
}

// processorRegistry keeps records sorted by descending priority. Equal priorities keep
// registration order.
type processorRegistry struct {
	records []ProcessorRecord
}

func (r *processorRegistry) insert(rec ProcessorRecord) {
	for i, existing := range r.records {
		if existing.priority < rec.priority {
			r.records = slices.Insert(r.records, i, rec)
			return
		}
	}
	r.records = append(r.records, rec)
}

// removeWhere drops every record of type t that match accepts and returns how many were removed.
func (r *processorRegistry) removeWhere(t reflect.Type, match func(ProcessorRecord) bool) int {
	before := len(r.records)
	r.records = slices.DeleteFunc(r.records, func(rec ProcessorRecord) bool {
		return rec.processorType() == t && match(rec)
	})
	return before - len(r.records)
}

func (r *processorRegistry) snapshot() []ProcessorRecord {
	return slices.Clone(r.records)
}

func (r *processorRegistry) len() int {
	return len(r.records)
}
