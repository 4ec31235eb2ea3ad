package form

// InputKind is the type attribute of the input that produced a change.
type InputKind string

const (
	InputText          InputKind = "text"
	InputEmail         InputKind = "email"
	InputNumber        InputKind = "number"
	InputSelect        InputKind = "select"
	InputCheckbox      InputKind = "checkbox"
	InputDateTimeLocal InputKind = "datetime-local"
)

// ChangeEvent is one input change. For checkboxes Value carries the skill
// label and Checked the new state; for everything else Value is the new value.
type ChangeEvent struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Type    InputKind `json:"type"`
	Checked bool      `json:"checked"`
}

type EventKind string

const (
	EventChange EventKind = "change"
	EventSubmit EventKind = "submit"
)

// Event is a recorded change or submit, as replayed by workers and tools.
type Event struct {
	Kind    EventKind `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Value   string    `json:"value,omitempty"`
	Type    InputKind `json:"type,omitempty"`
	Checked bool      `json:"checked,omitempty"`
}

// Change returns the change payload of e.
func (e Event) Change() ChangeEvent {
	return ChangeEvent{Name: e.Name, Value: e.Value, Type: e.Type, Checked: e.Checked}
}
