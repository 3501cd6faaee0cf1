package chat

// Widget names a rich UI block the presentation layer renders alongside a
// message. The set is closed; anything else is a defect, not a default case.
type Widget string

const (
	WidgetNone             Widget = ""
	WidgetFeatureGrid      Widget = "feature_grid"
	WidgetTwinMatrix       Widget = "twin_matrix"
	WidgetInstagramConnect Widget = "instagram_connect"
	WidgetActiveTask       Widget = "active_task"
	WidgetGlobalDashboard  Widget = "global_dashboard"
)

func (w Widget) Valid() bool {
	switch w {
	case WidgetNone, WidgetFeatureGrid, WidgetTwinMatrix, WidgetInstagramConnect, WidgetActiveTask, WidgetGlobalDashboard:
		return true
	}
	return false
}

// Action is a directive returned by the remote completion service telling the
// engine which local surface to reveal before the text reply.
type Action string

const (
	ActionNone           Action = ""
	ActionShowInstagram  Action = "show_instagram_widget"
	ActionShowTwinMatrix Action = "show_twin_matrix"
	ActionShowTasks      Action = "show_tasks"
	ActionShowDashboard  Action = "show_dashboard"
)

func (a Action) Valid() bool {
	switch a {
	case ActionNone, ActionShowInstagram, ActionShowTwinMatrix, ActionShowTasks, ActionShowDashboard:
		return true
	}
	return false
}
