package phrases

var numberWords = map[Language]map[string]float64{
	English: {
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
		"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
		"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
		"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
		"hundred": 100, "thousand": 1000, "million": 1000000, "billion": 1000000000,
		"lakh": 100000, "lakhs": 100000, "crore": 10000000, "crores": 10000000,
		"k": 1000, "m": 1000000,
	},
	Tamil: {
		"ondru": 1, "irandu": 2, "moondru": 3, "naangu": 4, "aindhu": 5,
		"aaru": 6, "ezhu": 7, "ettu": 8, "onbadhu": 9, "patthu": 10,
		"ambathu": 50, "sath": 100, "nooru": 100,
		"ayiram": 1000, "aayiram": 1000, "aiyiram": 5000, "pathayiram": 10000,
		"latcham": 100000, "kodi": 10000000,
		"ஒன்று": 1, "இரண்டு": 2, "மூன்று": 3, "நான்கு": 4, "ஐந்து": 5,
		"நூறு": 100, "ஆயிரம்": 1000, "லட்சம்": 100000, "கோடி": 10000000,
	},
	Hindi: {
		"ek": 1, "do": 2, "teen": 3, "char": 4, "paanch": 5,
		"che": 6, "saat": 7, "aath": 8, "nau": 9, "das": 10,
		"bees": 20, "tis": 30, "chalis": 40, "pachas": 50,
		"sau": 100, "hazaar": 1000, "hazar": 1000, "lakh": 100000, "crore": 10000000,
		"एक": 1, "दो": 2, "तीन": 3, "चार": 4, "पांच": 5, "पाँच": 5, "दस": 10,
		"सौ": 100, "हजार": 1000, "हज़ार": 1000, "लाख": 100000, "करोड़": 10000000,
	},
	Marwadi: {
		"ek": 1, "be": 2, "tran": 3, "char": 4, "paanch": 5,
		"chha": 6, "saat": 7, "aath": 8, "nau": 9, "das": 10,
		"so": 100, "hazaar": 1000, "lakh": 100000, "crore": 10000000,
	},
}

var zeroWords = map[Language][]string{
	English: {"zero", "nil"},
	Tamil:   {"pujyam", "பூஜ்ஜியம்"},
	Hindi:   {"shunya", "शून्य"},
	Marwadi: {"shunya"},
}

// NumberWords returns the spoken-number lexicon for lang merged over en-US.
// The returned map is a fresh copy.
func NumberWords(lang Language) map[string]float64 {
	merged := make(map[string]float64, len(numberWords[Default])+len(numberWords[lang]))
	for word, value := range numberWords[Default] {
		merged[word] = value
	}
	if lang != Default {
		for word, value := range numberWords[lang] {
			merged[word] = value
		}
	}
	return merged
}

// ScaleWords returns the entries of NumberWords(lang) worth at least 100.
func ScaleWords(lang Language) map[string]float64 {
	scales := make(map[string]float64)
	for word, value := range NumberWords(lang) {
		if value >= 100 {
			scales[word] = value
		}
	}
	return scales
}

// ZeroWords returns the explicit zero keywords for lang plus the en-US ones.
func ZeroWords(lang Language) []string {
	return mergeLists(zeroWords, lang)
}

func mergeLists(table map[Language][]string, lang Language) []string {
	out := append([]string(nil), table[Default]...)
	if lang != Default {
		out = append(out, table[lang]...)
	}
	return out
}
