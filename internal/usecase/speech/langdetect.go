package speech

import "unicode"

// vietnameseMarks are the diacritic-bearing letters unique to Vietnamese
// orthography. A handful of hits is enough to call the text Vietnamese.
const vietnameseMarks = "àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ"

// DetectLanguage guesses the language of a text by character-set sniffing.
// It distinguishes only the supported tags: Vietnamese by its diacritics,
// Chinese by Han characters, everything else defaults to English. This is
// deliberately crude; it only has to route text to a sensible voice when
// the caller did not say.
func DetectLanguage(text string) string {
	viSet := make(map[rune]struct{}, len(vietnameseMarks))
	for _, r := range vietnameseMarks {
		viSet[r] = struct{}{}
	}

	han := 0
	for _, r := range text {
		if _, ok := viSet[unicode.ToLower(r)]; ok {
			return "vi"
		}
		if unicode.Is(unicode.Han, r) {
			han++
		}
	}
	if han > 0 {
		return "zh"
	}
	return "en"
}
