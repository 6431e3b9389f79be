package region

import "strings"

// Area is one administrative area (oblast or city) with an independently
// published outage schedule. Code doubles as the schedule file name.
type Area struct {
	Code  string
	Title string
}

// Group is a macro-region used to keep the area selection keyboard short.
type Group struct {
	Code  string
	Title string
	Areas []Area
}

// Groups is the full catalogue. Some areas are listed for completeness even
// though their oblenergo rarely publishes schedules.
var Groups = []Group{
	{
		Code:  "west",
		Title: "Західний 🇺🇦",
		Areas: []Area{
			{Code: "lviv", Title: "Львівська"},
			{Code: "ivano-frankivsk", Title: "Івано-Франківська"},
			{Code: "ternopil", Title: "Тернопільська"},
			{Code: "volyn", Title: "Волинська"},
			{Code: "rivne", Title: "Рівненська"},
			{Code: "zakarpattia", Title: "Закарпатська"},
			{Code: "chernivtsi", Title: "Чернівецька"},
			{Code: "khmelnytskyi", Title: "Хмельницька"},
		},
	},
	{
		Code:  "north",
		Title: "Північний та Центр 🌻",
		Areas: []Area{
			{Code: "kyivcity", Title: "Київ (Місто)"},
			{Code: "kyivobl", Title: "Київська (Область)"},
			{Code: "zhytomyr", Title: "Житомирська"},
			{Code: "vinnytsia", Title: "Вінницька"},
			{Code: "chernihiv", Title: "Чернігівська"},
			{Code: "sumy", Title: "Сумська"},
			{Code: "cherkasy", Title: "Черкаська"},
			{Code: "kirovohrad", Title: "Кіровоградська"},
			{Code: "poltava", Title: "Полтавська"},
		},
	},
	{
		Code:  "south",
		Title: "Південний 🌊",
		Areas: []Area{
			{Code: "odesa", Title: "Одеська"},
			{Code: "mykolaiv", Title: "Миколаївська"},
			{Code: "kherson", Title: "Херсонська"},
			{Code: "zaporizhzhia", Title: "Запорізька"},
		},
	},
	{
		Code:  "east",
		Title: "Східний 🛡️",
		Areas: []Area{
			{Code: "dnipro", Title: "Дніпропетровська"},
			{Code: "kharkiv", Title: "Харківська"},
			{Code: "donetsk", Title: "Донецька"},
			{Code: "luhansk", Title: "Луганська"},
		},
	},
}

// Codes returns every area code in catalogue order.
func Codes() []string {
	var codes []string
	for _, g := range Groups {
		for _, a := range g.Areas {
			codes = append(codes, a.Code)
		}
	}
	return codes
}

// Known reports whether the code is in the catalogue.
func Known(code string) bool {
	for _, g := range Groups {
		for _, a := range g.Areas {
			if a.Code == code {
				return true
			}
		}
	}
	return false
}

// Title returns the display title of an area, falling back to the
// capitalized code for unknown areas.
func Title(code string) string {
	for _, g := range Groups {
		for _, a := range g.Areas {
			if a.Code == code {
				return a.Title
			}
		}
	}
	if code == "" {
		return code
	}
	return strings.ToUpper(code[:1]) + code[1:]
}

// GroupByCode returns the macro-region with the given code.
func GroupByCode(code string) (Group, bool) {
	for _, g := range Groups {
		if g.Code == code {
			return g, true
		}
	}
	return Group{}, false
}
