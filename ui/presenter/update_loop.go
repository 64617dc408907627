package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Editor    *EditorPresenter
	Workspace *WorkspacePresenter
	Status    *StatusPresenter
	Schedule  func()
}

func NewLoop(editor *EditorPresenter, ws *WorkspacePresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Editor: editor, Workspace: ws, Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	// Lists first so a selection made this tick is reflected with the redraw.
	l.Workspace.Tick()
	l.Editor.Tick()
	l.Status.Tick()
	if l.Schedule != nil {
		l.Schedule()
	}
}
