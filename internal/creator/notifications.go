// internal/creator/notifications.go
package creator

import "gigboard/internal/models"

var (
	NotifyValidationFailed = models.Notification{
		Title:       "Validation Error",
		Description: "Please fill in all required fields with valid values. USTAR Points must be a non-negative integer.",
		Severity:    models.SeverityDestructive,
	}
	NotifyDraftSaved = models.Notification{
		Title:       "Job Saved",
		Description: "Your job has been saved as a draft.",
		Severity:    models.SeverityDefault,
	}
	NotifyJobSubmitted = models.Notification{
		Title:       "Job Submitted",
		Description: "Your job has been submitted successfully.",
		Severity:    models.SeverityDefault,
	}
	NotifyJobUpdated = models.Notification{
		Title:       "Job Updated",
		Description: "Your job has been updated successfully.",
		Severity:    models.SeverityDefault,
	}
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(n models.Notification)
}

// Navigator receives navigation intents.
type Navigator interface {
	Navigate(view models.View)
}

// Recorder collects notifications and navigation intents in memory. Workers
// use it to turn flow side effects into job variables.
type Recorder struct {
	Notifications []models.Notification
	Views         []models.View
}

func (r *Recorder) Notify(n models.Notification) {
	r.Notifications = append(r.Notifications, n)
}

func (r *Recorder) Navigate(view models.View) {
	r.Views = append(r.Views, view)
}

// LastView returns the most recent navigation intent, or "" if none.
func (r *Recorder) LastView() models.View {
	if len(r.Views) == 0 {
		return ""
	}
	return r.Views[len(r.Views)-1]
}
