package ocr

// 食譜領域詞彙表：拼字修復的建議來源
// 刻意限縮在食譜常見詞，避免把正常單字改成不相干的建議
var recipeVocabulary = []string{
	// 結構詞
	"ingredients", "ingredient", "instructions", "instruction", "directions",
	"preparation", "servings", "serving", "recipe", "method", "tips", "notes",
	"marinade", "seasoning", "batter", "sauce", "dough", "topping", "garnish",
	// 動詞
	"preheat", "bake", "boil", "simmer", "saute", "fry", "grill", "roast",
	"mix", "stir", "whisk", "fold", "knead", "chop", "slice", "dice", "mince",
	"combine", "season", "marinate", "drain", "serve", "garnish", "sprinkle",
	"pour", "spread", "cover", "refrigerate", "cool", "heat", "melt", "blend",
	"cook", "add", "cut", "set", "serves", "oven", "skillet", "pan",
	// 食材
	"chicken", "breast", "beef", "pork", "salmon", "shrimp", "tofu",
	"butter", "sugar", "flour", "salt", "pepper", "garlic", "onion", "ginger",
	"tomato", "potato", "carrot", "celery", "mushroom", "spinach", "broccoli",
	"cheese", "cream", "milk", "yogurt", "eggs", "honey", "vinegar", "sesame",
	"olive", "vegetable", "chocolate", "vanilla", "cinnamon", "paprika",
	"oregano", "basil", "parsley", "cilantro", "thyme", "rosemary", "lemon",
	"water", "broth", "stock", "wine", "soy", "oil", "egg", "rice",
	// 量詞與描述
	"tablespoon", "tablespoons", "teaspoon", "teaspoons", "cups", "ounce",
	"ounces", "pound", "pounds", "grams", "minutes", "minute", "hours", "hour",
	"medium", "large", "small", "fresh", "ground", "chopped", "sliced",
	"diced", "minced", "melted", "softened", "optional", "taste", "needed",
	"overnight", "degrees", "temperature",
}

// fixedCorrections 常見 OCR 誤拼的固定對照，整詞且大小寫不敏感
var fixedCorrections = map[string]string{
	"ingrediant":   "ingredient",
	"ingrediants":  "ingredients",
	"ingredeints":  "ingredients",
	"instuctions":  "instructions",
	"instrutions":  "instructions",
	"dirctions":    "directions",
	"teaspon":      "teaspoon",
	"tablespon":    "tablespoon",
	"preheet":      "preheat",
	"ovne":         "oven",
	"recipie":      "recipe",
	"recepie":      "recipe",
	"minuets":      "minutes",
	"chiken":       "chicken",
	"galic":        "garlic",
	"seasonning":   "seasoning",
	"buttter":      "butter",
}

// unitTokens 受控單位詞彙與其常見別名，修復時一律跳過
var unitTokens = map[string]bool{
	"tbsp": true, "tbs": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"cup": true, "cups": true,
	"g": true, "gram": true, "grams": true,
	"kg": true, "ml": true, "l": true, "liter": true, "liters": true,
	"oz": true, "ounce": true, "ounces": true, "fl_oz": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"piece": true, "pieces": true, "pinch": true, "pinches": true,
	"clove": true, "cloves": true, "slice": true, "slices": true,
	"can": true, "cans": true, "stick": true, "sticks": true,
}

// isUnitToken 判斷小寫單字是否為單位詞彙
func isUnitToken(word string) bool {
	return unitTokens[word]
}

// commonWords 一般英文常用字，永不做拼字修復
// 短字與詞彙表的編輯距離太近，不擋下來會被誤改（and→add 這類）
var commonWords = map[string]bool{
	"the": true, "and": true, "with": true, "for": true, "into": true,
	"over": true, "under": true, "until": true, "then": true, "them": true,
	"when": true, "each": true, "all": true, "your": true, "you": true,
	"are": true, "has": true, "have": true, "let": true, "its": true,
	"out": true, "off": true, "not": true, "use": true, "from": true,
	"but": true, "get": true, "put": true, "dry": true, "wet": true,
	"hot": true, "cold": true, "one": true, "two": true, "few": true,
	"about": true, "well": true, "side": true, "top": true, "more": true,
}

// isCommonWord 判斷小寫單字是否為常用字
func isCommonWord(word string) bool {
	return commonWords[word]
}
