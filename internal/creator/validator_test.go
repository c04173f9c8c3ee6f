package creator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() Form {
	return Form{
		Heading:     "Fix bug",
		Description: "Patch issue",
		Task:        "dev",
		UstarPoints: "5",
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(f *Form)
		valid    bool
		failures []Field
	}{
		{
			name:   "valid form",
			mutate: func(f *Form) {},
			valid:  true,
		},
		{
			name:     "empty heading",
			mutate:   func(f *Form) { f.Heading = "" },
			failures: []Field{FieldHeading},
		},
		{
			name:     "whitespace description",
			mutate:   func(f *Form) { f.Description = "   \t" },
			failures: []Field{FieldDescription},
		},
		{
			name:     "empty task",
			mutate:   func(f *Form) { f.Task = "" },
			failures: []Field{FieldTask},
		},
		{
			name:     "negative points",
			mutate:   func(f *Form) { f.UstarPoints = "-5" },
			failures: []Field{FieldUstarPoints},
		},
		{
			name:     "decimal points",
			mutate:   func(f *Form) { f.UstarPoints = "2.5" },
			failures: []Field{FieldUstarPoints},
		},
		{
			name:     "points with surrounding space",
			mutate:   func(f *Form) { f.UstarPoints = " 5" },
			failures: []Field{FieldUstarPoints},
		},
		{
			name:     "blank points",
			mutate:   func(f *Form) { f.UstarPoints = "  " },
			failures: []Field{FieldUstarPoints},
		},
		{
			name:   "zero points",
			mutate: func(f *Form) { f.UstarPoints = "0" },
			valid:  true,
		},
		{
			name:   "points beyond int64",
			mutate: func(f *Form) { f.UstarPoints = "99999999999999999999999" },
			valid:  true,
		},
		{
			name:     "everything empty",
			mutate:   func(f *Form) { *f = Form{} },
			failures: []Field{FieldHeading, FieldDescription, FieldTask, FieldUstarPoints},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			errs, ok := ValidateForm(form)

			assert.Equal(t, tt.valid, ok)
			assert.Len(t, errs, len(RequiredFields), "every field is reported on each pass")
			assert.Equal(t, tt.failures, errs.Failed())
		})
	}
}

func TestValidateForm_AnyNonDigitFails(t *testing.T) {
	for _, points := range []string{"5a", "a5", "1e3", "+1", "0x10", "٣"} {
		form := validForm()
		form.UstarPoints = points

		errs, ok := ValidateForm(form)
		assert.False(t, ok, points)
		assert.True(t, errs[FieldUstarPoints], points)
	}
}

func TestIsNegative(t *testing.T) {
	assert.True(t, isNegative("-1"))
	assert.False(t, isNegative("0"))
	assert.False(t, isNegative("12"))
	assert.False(t, isNegative("99999999999999999999999"))
}
