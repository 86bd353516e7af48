package cli

import (
	"timekeeper/internal/domain"
)

// FilterFlags carries the filter flags shared by list, report, and summary
type FilterFlags struct {
	User      int64
	TaskID    int64
	ProjectID int64
	Since     string
	From      string
	To        string
	Text      string
	Billable  *bool
	Closed    bool
	Sort      string
	Ascending bool
	Limit     int
	Offset    int
}

// toFilter translates CLI flags into a domain filter. The user is resolved
// only when scoped is true; reports may span all users.
func (f FilterFlags) toFilter(scoped bool) (domain.Filter, error) {
	filter := domain.Filter{
		ClosedOnly: f.Closed,
		SortKey:    domain.SortKey(f.Sort),
		Offset:     f.Offset,
		Limit:      f.Limit,
	}

	if scoped || f.User > 0 {
		userID, err := resolveUserID(f.User)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.UserID = &userID
	}
	if f.TaskID > 0 {
		taskID := f.TaskID
		filter.TaskID = &taskID
	}
	if f.ProjectID > 0 {
		projectID := f.ProjectID
		filter.ProjectID = &projectID
	}
	if f.Text != "" {
		text := f.Text
		filter.Text = &text
	}
	filter.Billable = f.Billable

	if f.Since != "" {
		d, err := parseTimeShorthand(f.Since)
		if err != nil {
			return domain.Filter{}, err
		}
		from := timeNow().Add(-d)
		filter.DateFrom = &from
	}
	if f.From != "" {
		from, err := parseTimeArg(f.From)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.DateFrom = &from
	}
	if f.To != "" {
		to, err := parseTimeArg(f.To)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.DateTo = &to
	}

	if f.Ascending {
		filter.SortDirection = domain.SortAscending
	}

	return filter, nil
}
