package view

// Severity категория сообщения. Набор открытый, CSS-класс строится из значения
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Messenger выводит статус последней операции
type Messenger struct {
	area StatusArea
}

func NewMessenger(area StatusArea) *Messenger {
	return &Messenger{area: area}
}

// SetMessage пустая severity означает info. Без StatusArea ничего не делает
func (m *Messenger) SetMessage(text string, severity Severity) {
	if m == nil || m.area == nil {
		return
	}
	if severity == "" {
		severity = SeverityInfo
	}
	m.area.SetStatus(text, "message "+string(severity))
}
