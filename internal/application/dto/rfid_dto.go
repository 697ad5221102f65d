package dto

// RfidEntryItem una unidad física a registrar. ExpirationDate en formato
// YYYY-MM-DD; una fecha no parseable se ignora.
type RfidEntryItem struct {
	RfidTag        string `json:"rfid_tag"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// RfidEntryRequest registro masivo de entradas RFID.
type RfidEntryRequest struct {
	Entries []RfidEntryItem `json:"entries"`
}

// RfidEntryResponse cuántos tags se registraron y cuántos ya existían.
type RfidEntryResponse struct {
	Message    string `json:"message"`
	Registered int    `json:"registered"`
	Duplicates int    `json:"duplicates"`
}

// EntryModeRequest toggle del modo entrada. Puntero para distinguir
// "ausente" de "false".
type EntryModeRequest struct {
	EntryMode *bool `json:"entry_mode"`
}

// EntryModeResponse estado actual del modo entrada.
type EntryModeResponse struct {
	EntryMode bool `json:"entry_mode"`
}
