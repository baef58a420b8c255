package schema

// FieldType represents the data type of a field.
type FieldType uint8

const (
	// TypeString represents a free-form string value.
	TypeString FieldType = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeFloat represents a floating-point value.
	TypeFloat
	// TypeBool represents a boolean value.
	TypeBool
	// TypeStringList represents an ordered list of strings.
	TypeStringList
	// TypePath represents a filesystem path.
	TypePath
	// TypeDate represents a calendar date.
	TypeDate
	// TypeDateTime represents a date with a time component.
	TypeDateTime
	// TypeURL represents a structured URL.
	TypeURL
)

// String returns the string representation of the type.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeStringList:
		return "string list"
	case TypePath:
		return "path"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	case TypeURL:
		return "url"
	default:
		return "unknown"
	}
}
