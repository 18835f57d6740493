package translate

// cjkRanges 中日韩统一表意文字及扩展区、兼容表意文字、CJK 兼容字符
var cjkRanges = [...][2]rune{
	{0x4E00, 0x9FFF},
	{0x3400, 0x4DBF},
	{0x20000, 0x2A6DF},
	{0x2A700, 0x2B73F},
	{0x2B740, 0x2B81F},
	{0x2B820, 0x2CEAF},
	{0xF900, 0xFAFF},
	{0x3300, 0x33FF},
}

// NeedsTranslation reports whether text contains any CJK ideograph.
func NeedsTranslation(text string) bool {
	for _, r := range text {
		if isCJK(r) {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	for _, rg := range cjkRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}
