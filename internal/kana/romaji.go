// Package kana converts romanized character names into katakana.
//
// The conversion is a greedy longest-match over Hepburn syllables with the
// usual name-friendly extensions (fa/fi, va/vi, ti/di). It cannot recover
// stylized spellings; callers keep an override table for those.
package kana

import "strings"

const maxSyllable = 3

var syllables = map[string]string{
	"a": "ア", "i": "イ", "u": "ウ", "e": "エ", "o": "オ",

	"ka": "カ", "ki": "キ", "ku": "ク", "ke": "ケ", "ko": "コ",
	"kya": "キャ", "kyu": "キュ", "kyo": "キョ",
	"ga": "ガ", "gi": "ギ", "gu": "グ", "ge": "ゲ", "go": "ゴ",
	"gya": "ギャ", "gyu": "ギュ", "gyo": "ギョ",

	"sa": "サ", "si": "シ", "su": "ス", "se": "セ", "so": "ソ",
	"sha": "シャ", "shi": "シ", "shu": "シュ", "she": "シェ", "sho": "ショ",
	"za": "ザ", "zi": "ジ", "zu": "ズ", "ze": "ゼ", "zo": "ゾ",
	"ja": "ジャ", "ji": "ジ", "ju": "ジュ", "je": "ジェ", "jo": "ジョ",

	"ta": "タ", "ti": "ティ", "tu": "トゥ", "te": "テ", "to": "ト",
	"tsa": "ツァ", "tsu": "ツ",
	"cha": "チャ", "chi": "チ", "chu": "チュ", "che": "チェ", "cho": "チョ",
	"da": "ダ", "di": "ディ", "du": "ドゥ", "de": "デ", "do": "ド",

	"na": "ナ", "ni": "ニ", "nu": "ヌ", "ne": "ネ", "no": "ノ",
	"nya": "ニャ", "nyu": "ニュ", "nyo": "ニョ",

	"ha": "ハ", "hi": "ヒ", "hu": "フ", "he": "ヘ", "ho": "ホ",
	"hya": "ヒャ", "hyu": "ヒュ", "hyo": "ヒョ",
	"fa": "ファ", "fi": "フィ", "fu": "フ", "fe": "フェ", "fo": "フォ",
	"ba": "バ", "bi": "ビ", "bu": "ブ", "be": "ベ", "bo": "ボ",
	"bya": "ビャ", "byu": "ビュ", "byo": "ビョ",
	"pa": "パ", "pi": "ピ", "pu": "プ", "pe": "ペ", "po": "ポ",
	"pya": "ピャ", "pyu": "ピュ", "pyo": "ピョ",

	"ma": "マ", "mi": "ミ", "mu": "ム", "me": "メ", "mo": "モ",
	"mya": "ミャ", "myu": "ミュ", "myo": "ミョ",
	"ya": "ヤ", "yu": "ユ", "ye": "イェ", "yo": "ヨ",
	"ra": "ラ", "ri": "リ", "ru": "ル", "re": "レ", "ro": "ロ",
	"rya": "リャ", "ryu": "リュ", "ryo": "リョ",
	"la": "ラ", "li": "リ", "lu": "ル", "le": "レ", "lo": "ロ",
	"wa": "ワ", "wi": "ウィ", "we": "ウェ", "wo": "ウォ",
	"va": "ヴァ", "vi": "ヴィ", "vu": "ヴ", "ve": "ヴェ", "vo": "ヴォ",
	"ca": "カ", "ci": "シ", "cu": "ク", "ce": "セ", "co": "コ",

	// consonants left without a vowel
	"sh": "シュ", "ch": "チ", "ts": "ツ",
	"k": "ク", "g": "グ", "s": "ス", "z": "ズ", "j": "ジ",
	"t": "ト", "d": "ド", "h": "フ", "f": "フ", "b": "ブ",
	"p": "プ", "m": "ム", "r": "ル", "l": "ル", "w": "ウ",
	"v": "ヴ", "c": "ク", "q": "ク", "x": "クス", "y": "イ",
}

func isVowel(c byte) bool {
	return strings.IndexByte("aiueo", c) >= 0
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}

// FromRomaji returns the katakana reading of a romanized name.
// Characters outside the Latin alphabet are copied through unchanged.
func FromRomaji(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == ' ':
			b.WriteString("・")
			i++
			continue
		case c == '-':
			b.WriteString("ー")
			i++
			continue
		case c == '\'' || c == '.':
			i++
			continue
		}

		if c == 'n' && syllabicN(s, i) {
			b.WriteString("ン")
			i += nLength(s, i)
			continue
		}

		if isConsonant(c) && c != 'n' && i+1 < len(s) &&
			(s[i+1] == c || strings.HasPrefix(s[i:], "tch")) {
			b.WriteString("ッ")
			i++
			continue
		}

		if kana, n := longestSyllable(s[i:]); n > 0 {
			b.WriteString(kana)
			i += n
			continue
		}

		// non-ASCII or punctuation: copy the full rune
		r := []rune(s[i:])[0]
		b.WriteRune(r)
		i += len(string(r))
	}

	return b.String()
}

// syllabicN reports whether the n at s[i] stands alone as ン.
func syllabicN(s string, i int) bool {
	if i+1 >= len(s) {
		return true
	}
	next := s[i+1]
	if next == 'n' {
		return true
	}
	return !isVowel(next) && next != 'y'
}

// nLength is how many letters a syllabic n at s[i] consumes. A doubled n
// is a single ン unless the second one starts the next syllable.
func nLength(s string, i int) int {
	if i+1 < len(s) && s[i+1] == 'n' {
		if i+2 >= len(s) || (!isVowel(s[i+2]) && s[i+2] != 'y') {
			return 2
		}
	}
	return 1
}

func longestSyllable(s string) (string, int) {
	for l := min(maxSyllable, len(s)); l > 0; l-- {
		if kana, ok := syllables[s[:l]]; ok {
			return kana, l
		}
	}
	return "", 0
}
