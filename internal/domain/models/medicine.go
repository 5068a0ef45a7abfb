package models

// Medicine запись справочника лекарств. Name - естественный ключ
type Medicine struct {
	Name  string  `json:"name" db:"name"`
	Price float64 `json:"price" db:"price"`
}
