package models

import (
	"github.com/shopspring/decimal"
)

// MoneyScale - количество знаков после запятой для сумм (NUMERIC(10,2))
const MoneyScale = 2

// Money хранит денежную сумму с фиксированной точкой.
// В JSON отдается строкой с двумя знаками ("12.50"), принимается и число, и строка.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(MoneyScale)}
}

// MustMoney разбирает строку; для тестов и констант
func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

func (m Money) String() string {
	return m.Decimal.StringFixed(MoneyScale)
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.Decimal = d.Round(MoneyScale)
	return nil
}

// Scan округляет значение из БД: SQLite хранит NUMERIC как REAL
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.Decimal = d.Round(MoneyScale)
	return nil
}
