package model

// Quantity identifies a physical quantity in a weather table.
type Quantity string

const (
	QuantityWindSpeed           Quantity = "wind_speed"
	QuantityTemperature         Quantity = "temperature"
	QuantityPressure            Quantity = "pressure"
	QuantityRoughnessLength     Quantity = "roughness_length"
	QuantityDensity             Quantity = "density"
	QuantityTurbulenceIntensity Quantity = "turbulence_intensity"
)

// QuantityInfo holds display name and unit for a quantity.
type QuantityInfo struct {
	Name string
	Unit string
}

// QuantityCatalog maps every known Quantity to its display name and unit.
var QuantityCatalog = map[Quantity]QuantityInfo{
	QuantityWindSpeed:           {Name: "Wind Speed", Unit: "m/s"},
	QuantityTemperature:         {Name: "Air Temperature", Unit: "K"},
	QuantityPressure:            {Name: "Air Pressure", Unit: "Pa"},
	QuantityRoughnessLength:     {Name: "Roughness Length", Unit: "m"},
	QuantityDensity:             {Name: "Air Density", Unit: "kg/m³"},
	QuantityTurbulenceIntensity: {Name: "Turbulence Intensity", Unit: ""},
}

// KnownQuantity reports whether q is one of the catalogued quantities.
func KnownQuantity(q Quantity) bool {
	_, ok := QuantityCatalog[q]
	return ok
}
