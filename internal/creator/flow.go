// internal/creator/flow.go
package creator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/models"
)

var (
	ErrValidation            = errors.New("job form validation failed")
	ErrNoPendingConfirmation = errors.New("no submission awaiting confirmation")
	ErrJobNotFound           = errors.New("job not found")
	ErrUnknownField          = errors.New("unknown form field")
	ErrInvalidView           = errors.New("invalid view")
)

// ValidationError carries the error map of a failed validation pass.
type ValidationError struct {
	Errors FormErrors
}

func (e *ValidationError) Error() string {
	failed := e.Errors.Failed()
	names := make([]string, len(failed))
	for i, f := range failed {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// State is the serialisable snapshot of a Flow.
type State struct {
	Form           Form         `json:"form"`
	Errors         FormErrors   `json:"errors"`
	Jobs           []models.Job `json:"jobs"`
	ActivePage     models.View  `json:"activePage"`
	ConfirmPending bool         `json:"confirmPending"`
}

// Flow drives the creator's job form and posted-job list. It is not safe for
// concurrent use.
type Flow struct {
	form           Form
	errors         FormErrors
	jobs           []models.Job
	activePage     models.View
	confirmPending bool
	lastID         int64

	notifier  Notifier
	navigator Navigator
	now       func() time.Time
}

func NewFlow(notifier Notifier, navigator Navigator) *Flow {
	return &Flow{
		errors:     FormErrors{},
		activePage: models.ViewAddJobs,
		notifier:   notifier,
		navigator:  navigator,
		now:        time.Now,
	}
}

// WithClock replaces the id and timestamp source.
func (f *Flow) WithClock(now func() time.Time) *Flow {
	f.now = now
	return f
}

// Restore replaces the flow's state with a stored snapshot.
func (f *Flow) Restore(s State) {
	f.form = s.Form
	f.errors = s.Errors
	if f.errors == nil {
		f.errors = FormErrors{}
	}
	f.jobs = append([]models.Job(nil), s.Jobs...)
	f.activePage = s.ActivePage
	if f.activePage == "" {
		f.activePage = models.ViewAddJobs
	}
	f.confirmPending = s.ConfirmPending
	f.lastID = 0
	for _, j := range f.jobs {
		if j.ID > f.lastID {
			f.lastID = j.ID
		}
	}
}

func (f *Flow) State() State {
	errs := make(FormErrors, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return State{
		Form:           f.form,
		Errors:         errs,
		Jobs:           f.Jobs(),
		ActivePage:     f.activePage,
		ConfirmPending: f.confirmPending,
	}
}

func (f *Flow) Form() Form              { return f.form }
func (f *Flow) Errors() FormErrors      { return f.errors }
func (f *Flow) ActivePage() models.View { return f.activePage }
func (f *Flow) ConfirmPending() bool    { return f.confirmPending }
func (f *Flow) Jobs() []models.Job      { return append([]models.Job(nil), f.jobs...) }

// SetField edits one form value. Editing while a submission awaits
// confirmation closes the confirmation.
func (f *Flow) SetField(field Field, value string) error {
	if !f.form.Set(field, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f.confirmPending = false
	return nil
}

// SetForm replaces all four values at once.
func (f *Flow) SetForm(form Form) {
	f.form = form
	f.confirmPending = false
}

// Validate re-checks every field and notifies once on failure.
func (f *Flow) Validate() bool {
	errs, ok := ValidateForm(f.form)
	f.errors = errs
	if !ok {
		f.notify(NotifyValidationFailed)
	}
	return ok
}

func (f *Flow) SaveDraft() (models.Job, error) {
	if !f.Validate() {
		return models.Job{}, f.validationError()
	}
	job := f.appendJob(models.JobStatusDraft)
	f.resetForm()
	f.notify(NotifyDraftSaved)
	return job, nil
}

// Submit validates the form and opens the confirmation step. Nothing is
// appended until ConfirmSubmit.
func (f *Flow) Submit() error {
	if !f.Validate() {
		return f.validationError()
	}
	f.confirmPending = true
	return nil
}

func (f *Flow) ConfirmSubmit() (models.Job, error) {
	if !f.confirmPending {
		return models.Job{}, ErrNoPendingConfirmation
	}
	job := f.appendJob(models.JobStatusSubmitted)
	f.resetForm()
	f.confirmPending = false
	f.navigate(models.ViewPostedJobs)
	f.notify(NotifyJobSubmitted)
	return job, nil
}

// CancelSubmit closes the confirmation step without side effects.
func (f *Flow) CancelSubmit() {
	f.confirmPending = false
}

// Update replaces the job with the same id by value.
func (f *Flow) Update(job models.Job) error {
	if !f.replace(job) {
		return fmt.Errorf("%w: %d", ErrJobNotFound, job.ID)
	}
	f.notify(NotifyJobUpdated)
	return nil
}

// SubmitExisting replaces the job with the same id, marking it submitted.
func (f *Flow) SubmitExisting(job models.Job) error {
	job.Status = models.JobStatusSubmitted
	if !f.replace(job) {
		return fmt.Errorf("%w: %d", ErrJobNotFound, job.ID)
	}
	f.navigate(models.ViewPostedJobs)
	f.notify(NotifyJobSubmitted)
	return nil
}

// Navigate switches between the creator's own views.
func (f *Flow) Navigate(view models.View) error {
	if view != models.ViewAddJobs && view != models.ViewPostedJobs {
		return fmt.Errorf("%w: %s", ErrInvalidView, view)
	}
	f.navigate(view)
	return nil
}

func (f *Flow) appendJob(status models.JobStatus) models.Job {
	now := f.now().UTC()
	id := now.UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id

	job := models.Job{
		ID:          id,
		Heading:     f.form.Heading,
		Description: f.form.Description,
		Task:        f.form.Task,
		UstarPoints: f.form.UstarPoints,
		Status:      status,
		CreatedAt:   now,
	}
	f.jobs = append(f.jobs, job)
	return job
}

// resetForm returns the form and its error map to their initial empty state.
func (f *Flow) resetForm() {
	f.form = Form{}
	f.errors = FormErrors{}
}

func (f *Flow) replace(job models.Job) bool {
	for i := range f.jobs {
		if f.jobs[i].ID == job.ID {
			f.jobs[i] = job
			return true
		}
	}
	return false
}

func (f *Flow) validationError() error {
	errs := make(FormErrors, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return &ValidationError{Errors: errs}
}

func (f *Flow) notify(n models.Notification) {
	if f.notifier != nil {
		f.notifier.Notify(n)
	}
}

func (f *Flow) navigate(view models.View) {
	f.activePage = view
	if f.navigator != nil {
		f.navigator.Navigate(view)
	}
}
