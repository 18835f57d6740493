package translate

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// commonPhrases 常用美术词汇，繁体为主，补充了简体写法
var commonPhrases = map[string]string{
	"一個":  "a",
	"一隻":  "a",
	"可愛的": "cute",
	"美麗的": "beautiful",
	"漂亮的": "pretty",
	"帥氣的": "handsome",
	"女孩":  "girl",
	"男孩":  "boy",
	"貓咄":  "cat",
	"貓":   "cat",
	"狗":   "dog",
	"花":   "flower",
	"樹":   "tree",
	"山":   "mountain",
	"海":   "ocean",
	"天空":  "sky",
	"雲":   "cloud",
	"太陽":  "sun",
	"月亮":  "moon",
	"星星":  "star",
	"風景":  "scenery",
	"城市":  "city",
	"房子":  "house",
	"車":   "car",
	"飛機":  "airplane",
	"船":   "ship",
	"日落":  "sunset",
	"日出":  "sunrise",
	"夏天":  "summer",
	"冬天":  "winter",
	"春天":  "spring",
	"秋天":  "autumn",
	"晚上":  "night",
	"白天":  "day",
	"紅色":  "red",
	"藍色":  "blue",
	"綠色":  "green",
	"黃色":  "yellow",
	"紫色":  "purple",
	"粉紅色": "pink",
	"黑色":  "black",
	"白色":  "white",

	// 常见负面提示词
	"模糊":  "blurry",
	"低品質": "low quality",
	"低质量": "low quality",
	"變形":  "deformed",
	"变形":  "deformed",
	"水印":  "watermark",

	// 简体
	"一个":  "a",
	"一只":  "a",
	"可爱的": "cute",
	"美丽的": "beautiful",
	"帅气的": "handsome",
	"猫":   "cat",
	"树":   "tree",
	"云":   "cloud",
	"太阳":  "sun",
	"风景":  "scenery",
	"车":   "car",
	"飞机":  "airplane",
	"红色":  "red",
	"蓝色":  "blue",
	"绿色":  "green",
	"黄色":  "yellow",
}

// phraseReplacer 长词优先：strings.Replacer 在同一位置按参数顺序取第一个匹配
var phraseReplacer = newPhraseReplacer(commonPhrases)

func newPhraseReplacer(table map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, " "+table[k]+" ")
	}
	return strings.NewReplacer(pairs...)
}

// TranslateLocally replaces every known phrase in text and collapses the
// resulting whitespace. The second return is false when nothing matched and
// text is returned unchanged.
func TranslateLocally(text string) (string, bool) {
	out := phraseReplacer.Replace(text)
	if out == text {
		return text, false
	}
	return strings.Join(strings.Fields(out), " "), true
}
