package coercion

// FieldKind tags a FieldDescriptor with its coercion variant. Each kind has
// its own validator; dispatch is an exhaustive switch in the engine.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindTextArray
	KindJSON
)

// String returns the kind name for logging
func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindTextArray:
		return "textArray"
	case KindJSON:
		return "json"
	}
	return "unknown"
}

// NumberConstraints bound a numeric field inclusively
type NumberConstraints struct {
	Min float64
	Max float64
}

// FieldDescriptor declares one updatable column of a resource schema
type FieldDescriptor struct {
	// Name is both the payload key and the storage column.
	Name string
	Kind FieldKind
	// Constraints applies to KindNumber only; nil means unconstrained.
	Constraints *NumberConstraints
}

// Text declares a text field
func Text(name string) FieldDescriptor {
	return FieldDescriptor{Name: name, Kind: KindText}
}

// Number declares an unconstrained numeric field
func Number(name string) FieldDescriptor {
	return FieldDescriptor{Name: name, Kind: KindNumber}
}

// BoundedNumber declares a numeric field with an inclusive [min, max] range
func BoundedNumber(name string, min, max float64) FieldDescriptor {
	return FieldDescriptor{
		Name:        name,
		Kind:        KindNumber,
		Constraints: &NumberConstraints{Min: min, Max: max},
	}
}

// TextArray declares a string-array field
func TextArray(name string) FieldDescriptor {
	return FieldDescriptor{Name: name, Kind: KindTextArray}
}

// JSON declares a free-form object field
func JSON(name string) FieldDescriptor {
	return FieldDescriptor{Name: name, Kind: KindJSON}
}
