package timeutil

import "time"

// mexicoCity zona horaria de los registros de auditoría. Se intenta cargar la
// zona IANA; si la base de datos de zonas no está disponible en el contenedor
// se usa el offset fijo GMT-6 (México no aplica horario de verano desde 2022).
var mexicoCity = loadMexicoCity()

func loadMexicoCity() *time.Location {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		return time.FixedZone("GMT-6", -6*60*60)
	}
	return loc
}

// NowMexicoCity devuelve la hora actual en la zona de Ciudad de México.
func NowMexicoCity() time.Time {
	return time.Now().In(mexicoCity)
}

// FormatMexicoCity separa un instante en fecha (YYYY-MM-DD) y hora (HH:MM)
// locales de Ciudad de México, el formato que consumen los dashboards.
func FormatMexicoCity(t time.Time) (date, clock string) {
	local := t.In(mexicoCity)
	return local.Format("2006-01-02"), local.Format("15:04")
}
