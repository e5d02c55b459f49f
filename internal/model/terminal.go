package model

// Terminal автовокзал, идентифицируется по коду
type Terminal struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
