// internal/models/navigation.go
package models

// View is a named navigation target understood by the router.
type View string

const (
	ViewAddJobs    View = "addJobs"
	ViewPostedJobs View = "postedJobs"
	ViewJobs       View = "jobs"
	ViewMyJobs     View = "myJobs"
)

func (v View) Valid() bool {
	switch v {
	case ViewAddJobs, ViewPostedJobs, ViewJobs, ViewMyJobs:
		return true
	}
	return false
}
