package weather

// BuildReport flattens a successful response into a Report for unit.
// resp.Location, resp.Current and resp.Current.Condition must be non-nil.
func BuildReport(resp CurrentResponse, unit Unit) Report {
	loc := resp.Location
	cur := resp.Current

	temp, feelsLike := cur.TempC, cur.FeelsLikeC
	if unit == Fahrenheit {
		temp, feelsLike = cur.TempF, cur.FeelsLikeF
	}

	return Report{
		Name:      loc.Name,
		Region:    loc.Region,
		Country:   loc.Country,
		Lat:       loc.Lat.String(),
		Lon:       loc.Lon.String(),
		Localtime: loc.Localtime,

		TempC:      cur.TempC.String(),
		TempF:      cur.TempF.String(),
		FeelsLikeC: cur.FeelsLikeC.String(),
		FeelsLikeF: cur.FeelsLikeF.String(),

		Temp:       temp.String(),
		FeelsLike:  feelsLike.String(),
		UnitSymbol: unit.Symbol(),

		Condition:     cur.Condition.Text,
		Humidity:      cur.Humidity.String(),
		Pressure:      cur.PressureMb.String(),
		WindSpeed:     cur.WindKph.String(),
		WindDir:       cur.WindDir,
		Precipitation: cur.PrecipMm.String(),
		UVIndex:       cur.UV.String(),
	}
}
