package phrases

// Group names a coarse keyword group.
type Group string

const (
	GroupAddExpense Group = "add_expense"
	GroupAddIncome  Group = "add_income"
	GroupCheckLoan  Group = "check_loan"
	GroupDashboard  Group = "dashboard"
	GroupHealth     Group = "financial_health"
	GroupEdit       Group = "edit_transaction"
	GroupDelete     Group = "delete_transaction"
	GroupReset      Group = "reset_data"
)

// GroupOrder is the order in which groups are tested. The destructive groups
// come first so "delete expense" is never read as an expense, and income and
// loan precede expense because "add" is an expense keyword. Health precedes
// dashboard so "show my financial health" is a health query.
var GroupOrder = []Group{
	GroupReset,
	GroupDelete,
	GroupEdit,
	GroupAddIncome,
	GroupCheckLoan,
	GroupAddExpense,
	GroupHealth,
	GroupDashboard,
}

var keywords = map[Language]map[Group][]string{
	English: {
		GroupAddExpense: {"add", "log", "record", "spent", "spend", "expense", "paid", "bought"},
		GroupAddIncome:  {"salary", "income", "earning", "earned"},
		GroupCheckLoan:  {"loan", "borrow", "emi"},
		GroupDashboard:  {"dashboard", "show", "overview"},
		GroupHealth:     {"health", "advice", "financial", "how am i"},
		GroupEdit:       {"change", "update", "modify", "make it", "correction"},
		GroupDelete:     {"delete", "remove", "cancel", "erase"},
		GroupReset:      {"reset", "clear", "wipe", "delete all", "start over"},
	},
	Tamil: {
		GroupAddExpense: {"selavu", "karchu", "poodu", "செலவு", "செலவாச்சு", "போடு"},
		GroupAddIncome:  {"sambalam", "varumanam", "வருமானம்", "சம்பளம்", "காசு"},
		GroupCheckLoan:  {"kadan", "கடன்"},
		GroupDashboard:  {"kaattu", "parvai", "முகப்பு", "காட்டு"},
		GroupHealth:     {"nalam", "alochanai", "நலம்", "ஆலோசனை"},
		GroupEdit:       {"maattru", "thiruthu", "மாற்று", "திருத்து"},
		GroupDelete:     {"ali", "neekku", "அழி", "நீக்கு"},
		GroupReset:      {"muluvasum ali", "muthalil irunthu", "ரீசெட்", "அழித்துவிடு"},
	},
	Hindi: {
		GroupAddExpense: {"kharcha", "vyay", "lagaya", "खर्चा", "व्यय", "लगाया"},
		GroupAddIncome:  {"tankhah", "aamdani", "kamai", "आमदनी", "तनख्वाह", "कमाई"},
		GroupCheckLoan:  {"udhaar", "karz", "लोन", "उधार", "कर्ज"},
		GroupDashboard:  {"dikhao", "डैशबोर्ड", "दिखाओ"},
		GroupHealth:     {"sehat", "salah", "सेहत", "सलाह"},
		GroupEdit:       {"badlo", "theek karo", "बदलो", "ठीक करो"},
		GroupDelete:     {"hatao", "nikalo", "हटाओ", "निकालो"},
		GroupReset:      {"saaf karo", "sab hatao", "रीसेट", "साफ करो"},
	},
	Marwadi: {
		GroupAddExpense: {"kharcho", "lagayo"},
		GroupAddIncome:  {"pagar", "kamai"},
		GroupCheckLoan:  {"udhaar", "karz"},
		GroupDashboard:  {"dikhao"},
		GroupHealth:     {"tabiyat", "salah"},
		GroupEdit:       {"badlo", "sahi karo"},
		GroupDelete:     {"hatao"},
		GroupReset:      {"saaf karo"},
	},
}

// Keywords returns the keywords of group for lang, followed by the en-US ones.
func Keywords(lang Language, group Group) []string {
	out := append([]string(nil), keywords[lang][group]...)
	if lang != Default {
		out = append(out, keywords[Default][group]...)
	}
	return out
}

// setMarkers flag an absolute statement ("my salary is 25000") as opposed to
// an increment.
var setMarkers = map[Language][]string{
	English: {" is ", " equals ", " set ", "set ", " to be ", " = "},
	Tamil:   {" aagum", " irukku", " இருக்கு"},
	Hindi:   {" hai", " है"},
	Marwadi: {" hai", " chhe"},
}

// SetMarkers returns the absolute-value markers for lang plus the en-US ones.
func SetMarkers(lang Language) []string {
	return mergeLists(setMarkers, lang)
}

// fillerWords are stripped from an expense phrase when guessing its category.
var fillerWords = map[Language][]string{
	English: {"add", "log", "record", "an", "a", "expense", "of", "spent", "spend", "for", "on", "paid", "bought", "rupees", "rs", "i"},
	Tamil:   {"selavu", "karchu", "poodu", "ku", "rubai"},
	Hindi:   {"kharcha", "vyay", "lagaya", "par", "ke", "liye", "rupaye", "ka", "ki", "mein"},
	Marwadi: {"kharcho", "lagayo", "par", "rupiya"},
}

// FillerWords returns the category-stripping words for lang plus en-US.
func FillerWords(lang Language) []string {
	return mergeLists(fillerWords, lang)
}
