package fields

// Constraint keys used in the map returned by Field.Constraints.
// They follow JSON Schema keyword names so generators can copy them over.
const (
	// Schema metadata
	ConstraintDescription = "description"
	ConstraintFormat      = "format"
	ConstraintDefault     = "default"

	// Numeric constraints
	ConstraintMinimum = "minimum"
	ConstraintMaximum = "maximum"

	// String constraints
	ConstraintMinLength       = "minLength"
	ConstraintMaxLength       = "maxLength"
	ConstraintPattern         = "pattern"
	ConstraintContentEncoding = "contentEncoding"

	// Array constraints
	ConstraintMinItems = "minItems"
	ConstraintMaxItems = "maxItems"

	// Value constraints
	ConstraintEnum = "enum"

	// Store metadata
	ConstraintReference = "x-reference"
)
