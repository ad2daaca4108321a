package validation

// Códigos de discagem conhecidos, por país ISO-3166 alpha-2. A tabela é
// extensível, não exaustiva: cobre os mercados atendidos hoje.
var countryDialCodes = map[string]string{
	"AR": "54",
	"BO": "591",
	"BR": "55",
	"CA": "1",
	"CL": "56",
	"CO": "57",
	"DE": "49",
	"EC": "593",
	"ES": "34",
	"FR": "33",
	"GB": "44",
	"IN": "91",
	"IT": "39",
	"MX": "52",
	"PE": "51",
	"PT": "351",
	"PY": "595",
	"US": "1",
	"UY": "598",
	"VE": "58",
}
