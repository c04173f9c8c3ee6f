// internal/creator/form.go
package creator

type Field string

const (
	FieldHeading     Field = "heading"
	FieldDescription Field = "description"
	FieldTask        Field = "task"
	FieldUstarPoints Field = "ustarPoints"
)

// RequiredFields lists every field checked on each validation pass, in form
// order.
var RequiredFields = []Field{FieldHeading, FieldDescription, FieldTask, FieldUstarPoints}

// Form is the editable job draft. Values are stored as typed.
type Form struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Task        string `json:"task"`
	UstarPoints string `json:"ustarPoints"`
}

// FormErrors maps each required field to whether it failed validation.
type FormErrors map[Field]bool

func (f Form) Get(field Field) string {
	switch field {
	case FieldHeading:
		return f.Heading
	case FieldDescription:
		return f.Description
	case FieldTask:
		return f.Task
	case FieldUstarPoints:
		return f.UstarPoints
	}
	return ""
}

// Set returns false for unknown field names.
func (f *Form) Set(field Field, value string) bool {
	switch field {
	case FieldHeading:
		f.Heading = value
	case FieldDescription:
		f.Description = value
	case FieldTask:
		f.Task = value
	case FieldUstarPoints:
		f.UstarPoints = value
	default:
		return false
	}
	return true
}

func (f Form) IsEmpty() bool {
	return f == Form{}
}

func (e FormErrors) Any() bool {
	for _, failed := range e {
		if failed {
			return true
		}
	}
	return false
}

// Failed returns the failing fields in form order.
func (e FormErrors) Failed() []Field {
	var out []Field
	for _, field := range RequiredFields {
		if e[field] {
			out = append(out, field)
		}
	}
	return out
}
