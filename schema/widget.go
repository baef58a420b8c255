package schema

import "fmt"

// WidgetKind names the kind of widget that edits a field.
type WidgetKind uint8

const (
	// KindText is a single-line text input.
	KindText WidgetKind = iota
	// KindPassword is a masked text input.
	KindPassword
	// KindTextArea is a multiline text input.
	KindTextArea
	// KindIntSpinner is an integer spinner with min/max bounds.
	KindIntSpinner
	// KindFloatSpinner is a decimal spinner with min/max bounds.
	KindFloatSpinner
	// KindToggle is a boolean toggle.
	KindToggle
	// KindSelect is a choice selector over an enumerated list.
	KindSelect
	// KindTagList is a tag-list input for string lists.
	KindTagList
	// KindPathBrowse is a path input with file browsing.
	KindPathBrowse
)

// String returns the widget kind name.
func (k WidgetKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPassword:
		return "password"
	case KindTextArea:
		return "textarea"
	case KindIntSpinner:
		return "int-spinner"
	case KindFloatSpinner:
		return "float-spinner"
	case KindToggle:
		return "toggle"
	case KindSelect:
		return "select"
	case KindTagList:
		return "tags"
	case KindPathBrowse:
		return "path"
	default:
		return "unknown"
	}
}

// KindFor resolves the widget kind for a field. An explicit Widget name on
// the field wins, then enumerated choices, then the field type. Excluded
// fields have no widget; requesting one is a usage error.
func KindFor(f *Field) (WidgetKind, error) {
	if f.Exclude {
		return 0, fmt.Errorf("%w: %s", ErrFieldExcluded, f.Name)
	}

	switch f.Widget {
	case "":
		// Fall through to choice/type selection.
	case "password":
		return KindPassword, nil
	case "textarea":
		return KindTextArea, nil
	case "tags":
		return KindTagList, nil
	case "text":
		return KindText, nil
	default:
		return 0, fmt.Errorf("%w: unknown widget %q on field %s", ErrInvalidField, f.Widget, f.Name)
	}

	if len(f.Choices) > 0 {
		return KindSelect, nil
	}

	switch f.Type {
	case TypeInt:
		return KindIntSpinner, nil
	case TypeFloat:
		return KindFloatSpinner, nil
	case TypeBool:
		return KindToggle, nil
	case TypeStringList:
		return KindTagList, nil
	case TypePath:
		return KindPathBrowse, nil
	default:
		return KindText, nil
	}
}
