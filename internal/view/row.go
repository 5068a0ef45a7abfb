package view

// ActionKind действие над строкой таблицы
type ActionKind string

const (
	ActionDelete      ActionKind = "delete"
	ActionChangePrice ActionKind = "change-price"
)

// Action кнопка в строке; Key - имя лекарства, зафиксированное при отрисовке
type Action struct {
	Kind  ActionKind
	Key   string
	Label string
	Class string
}

// Row строка таблицы
type Row struct {
	Name    string
	Price   string
	Actions []Action
}

// NewMedicineRow строка с кнопками Delete и Change Price для лекарства name
func NewMedicineRow(name, price string) Row {
	return Row{
		Name:  name,
		Price: price,
		Actions: []Action{
			{Kind: ActionDelete, Key: name, Label: "Delete", Class: "btn btn-delete"},
			{Kind: ActionChangePrice, Key: name, Label: "Change Price", Class: "btn btn-change"},
		},
	}
}

// Action ищет действие строки по виду
func (r Row) Action(kind ActionKind) (Action, bool) {
	for _, a := range r.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}
