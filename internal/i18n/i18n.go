// Package i18n holds the static UI strings in every supported language.
package i18n

// BaseLanguage is used when a requested language is not in the table.
const BaseLanguage = "en"

const (
	KeyGreeting   = "greeting"
	KeyNoMatch    = "no_match"
	KeyInputError = "input_error"
	KeyDisclaimer = "disclaimer"
)

var (
	Languages = []string{"en", "es", "fr", "hi"}
	Keys      = []string{KeyGreeting, KeyNoMatch, KeyInputError, KeyDisclaimer}
)

var table = map[string]map[string]string{
	"en": {
		KeyGreeting:   "Hello! Describe your symptoms and I will suggest possible conditions.",
		KeyNoMatch:    "No matching conditions found. Try rephrasing or consult a healthcare professional.",
		KeyInputError: "Please describe your symptoms (at least 3 characters)",
		KeyDisclaimer: "This is not medical advice. Always consult a qualified healthcare professional.",
	},
	"es": {
		KeyGreeting:   "¡Hola! Describe tus síntomas y te sugeriré posibles condiciones.",
		KeyNoMatch:    "No se encontraron condiciones coincidentes. Intenta reformular o consulta a un profesional de la salud.",
		KeyInputError: "Por favor describe tus síntomas (al menos 3 caracteres)",
		KeyDisclaimer: "Esto no es consejo médico. Consulta siempre a un profesional de la salud calificado.",
	},
	"fr": {
		KeyGreeting:   "Bonjour ! Décrivez vos symptômes et je vous suggérerai des affections possibles.",
		KeyNoMatch:    "Aucune affection correspondante trouvée. Reformulez ou consultez un professionnel de santé.",
		KeyInputError: "Veuillez décrire vos symptômes (au moins 3 caractères)",
		KeyDisclaimer: "Ceci n'est pas un avis médical. Consultez toujours un professionnel de santé qualifié.",
	},
	"hi": {
		KeyGreeting:   "नमस्ते! अपने लक्षण बताइए और मैं संभावित स्थितियाँ सुझाऊँगा।",
		KeyNoMatch:    "कोई मेल खाती स्थिति नहीं मिली। दोबारा लिखें या किसी स्वास्थ्य विशेषज्ञ से सलाह लें।",
		KeyInputError: "कृपया अपने लक्षण बताइए (कम से कम 3 अक्षर)",
		KeyDisclaimer: "यह चिकित्सा सलाह नहीं है। हमेशा किसी योग्य स्वास्थ्य विशेषज्ञ से परामर्श करें।",
	},
}

// Translate looks up key in lang, falling back to BaseLanguage for unknown
// languages. An unknown key yields "".
func Translate(lang, key string) string {
	entries, ok := table[lang]
	if !ok {
		entries = table[BaseLanguage]
	}
	return entries[key]
}

// Supported reports whether lang has its own table.
func Supported(lang string) bool {
	_, ok := table[lang]
	return ok
}
