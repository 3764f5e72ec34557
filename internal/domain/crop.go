package domain

import "strings"

// Crop identifies a supported crop type by its canonical English name.
type Crop string

// Supported crops
const (
	CropApple       Crop = "Apple"
	CropBanana      Crop = "Banana"
	CropMango       Crop = "Mango"
	CropOrange      Crop = "Orange"
	CropGrapes      Crop = "Grapes"
	CropStrawberry  Crop = "Strawberry"
	CropPapaya      Crop = "Papaya"
	CropGuava       Crop = "Guava"
	CropPomegranate Crop = "Pomegranate"
	CropCoconut     Crop = "Coconut"
	CropTomato      Crop = "Tomato"
	CropPotato      Crop = "Potato"
	CropCotton      Crop = "Cotton"
	CropSugarcane   Crop = "Sugarcane"
	CropTurmeric    Crop = "Turmeric"
	CropPepper      Crop = "Pepper"
	CropArecanut    Crop = "Arecanut"
	CropRice        Crop = "Rice"
	CropMaize       Crop = "Maize"
	CropWheat       Crop = "Wheat"
)

// Crops lists every supported crop in catalog order.
var Crops = []Crop{
	CropApple, CropBanana, CropMango, CropOrange, CropGrapes,
	CropStrawberry, CropPapaya, CropGuava, CropPomegranate, CropCoconut,
	CropTomato, CropPotato, CropCotton, CropSugarcane, CropTurmeric,
	CropPepper, CropArecanut, CropRice, CropMaize, CropWheat,
}

// CommonDiseases maps each crop to the diseases the analyzer is primed with.
var CommonDiseases = map[Crop][]string{
	CropApple:       {"Apple Scab", "Fire Blight", "Powdery Mildew", "Cedar Apple Rust", "Black Rot"},
	CropBanana:      {"Panama Disease", "Black Sigatoka", "Banana Bunchy Top Virus", "Banana Streak Virus"},
	CropMango:       {"Anthracnose", "Powdery Mildew", "Bacterial Canker", "Mango Malformation"},
	CropOrange:      {"Citrus Canker", "Citrus Greening (HLB)", "Citrus Black Spot", "Melanose"},
	CropGrapes:      {"Downy Mildew", "Powdery Mildew", "Black Rot", "Anthracnose", "Pierce's Disease"},
	CropStrawberry:  {"Gray Mold", "Powdery Mildew", "Leaf Spot", "Anthracnose"},
	CropPapaya:      {"Papaya Ringspot Virus", "Anthracnose", "Black Spot", "Powdery Mildew"},
	CropGuava:       {"Anthracnose", "Wilt Disease", "Canker", "Fruit Fly damage"},
	CropPomegranate: {"Bacterial Blight", "Fruit Rot", "Cercospora Leaf Spot"},
	CropCoconut:     {"Bud Rot", "Leaf Blight", "Root Wilt", "Stem Bleeding", "Thanjavur Wilt"},
	CropTomato:      {"Early Blight", "Late Blight", "Septoria Leaf Spot", "Bacterial Spot", "Fusarium Wilt"},
	CropPotato:      {"Late Blight", "Early Blight", "Black Leg", "Potato Virus Y"},
	CropCotton:      {"Bacterial Blight", "Verticillium Wilt", "Fusarium Wilt", "Boll Rot"},
	CropSugarcane:   {"Red Rot", "Smut", "Wilt", "Leaf Scald", "Pokkah Boeng"},
	CropTurmeric:    {"Leaf Spot", "Leaf Blotch", "Rhizome Rot", "Scale Insects"},
	CropPepper:      {"Foot Rot (Phytophthora)", "Anthracnose", "Leaf Spot", "Pollu Beetle damage"},
	CropArecanut:    {"Fruit Rot", "Koleroga (Mahali)", "Yellow Leaf Disease", "Inflorescence Die-back"},
	CropRice:        {"Blast", "Bacterial Blight", "Sheath Blight", "Brown Spot"},
	CropMaize:       {"Northern Corn Leaf Blight", "Gray Leaf Spot", "Common Rust", "Ear Rot"},
	CropWheat:       {"Rust diseases", "Powdery Mildew", "Septoria", "Fusarium Head Blight"},
}

// ParseCrop resolves a user-supplied crop name, case-insensitively.
// Returns false when the crop is not in the catalog.
func ParseCrop(name string) (Crop, bool) {
	trimmed := strings.TrimSpace(name)
	for _, c := range Crops {
		if strings.EqualFold(string(c), trimmed) {
			return c, true
		}
	}
	return "", false
}

// Language is an ISO 639-1 code for advice localization.
type Language string

// Supported advice languages
const (
	LangEnglish   Language = "en"
	LangHindi     Language = "hi"
	LangKannada   Language = "kn"
	LangTamil     Language = "ta"
	LangTelugu    Language = "te"
	LangMalayalam Language = "ml"
)

// Languages lists every supported advice language.
var Languages = []Language{
	LangEnglish, LangHindi, LangKannada, LangTamil, LangTelugu, LangMalayalam,
}

// languageNames maps codes to the names spelled out in analyzer prompts.
var languageNames = map[Language]string{
	LangEnglish:   "English",
	LangHindi:     "Hindi",
	LangKannada:   "Kannada",
	LangTamil:     "Tamil",
	LangTelugu:    "Telugu",
	LangMalayalam: "Malayalam",
}

// ParseLanguage resolves a language code, defaulting to English for
// unknown or empty input.
func ParseLanguage(code string) Language {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := languageNames[lang]; ok {
		return lang
	}
	return LangEnglish
}

// Name returns the human-readable name of the language.
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return languageNames[LangEnglish]
}
