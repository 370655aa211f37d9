package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Translator retrieves localized labels and messages for error codes.
// data provides values substituted for {key} placeholders (for example,
// "option" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"label.help":      "No help available for this option.",
		"label.usage":     "Usage",
		"label.options":   "OPTIONS",
		"label.arguments": "ARGUMENTS",
		"label.required":  "required",
		"label.default":   "default",
		"label.base":      "base",
		"label.show_help": "Show this help message and exit.",

		"no_name":         "no option name given",
		"invalid_name":    "illegal option name: {name}",
		"duplicate_name":  "option already exists: {name}",
		"unknown_type":    "type of option {option} is unknown: {type}",
		"missing_parse":   "no parse function defined for custom type option {option}",
		"metavar_count":   "illegal number of metavars for option {option}: {metavar}",
		"min_max":         "min > max for option {option}",
		"invalid_base":    "illegal base for option {option}: {base}",
		"empty_enum":      "no values for enum {option} defined",
		"empty_record":    "record {option} needs at least one argument",
		"record_arg":      "argument {index} of option {option} has illegal number of arguments",
		"argument_bounds": "minargs > maxargs",
		"invalid_default": "illegal default value for option {option}: {value}",

		"unknown_option":          "unknown option: {option}",
		"illegal_syntax":          "illegal option syntax: {arg}",
		"missing_argument":        "option {option} needs {argc} arguments",
		"too_many_arguments":      "option {option} needs {argc} arguments, but another option in {arg} already took them",
		"unexpected_argument":     "option {option} does not need an argument",
		"invalid_value":           "illegal value for option {option}: {value}",
		"redefined_option":        "cannot redefine option {option}",
		"argument_count.min":      "illegal number of arguments: {count}, minimum is {min}",
		"argument_count.max":      "illegal number of arguments: {count}, maximum is {max}",
		"argument_count.range":    "illegal number of arguments: {count}, minimum is {min} and maximum is {max}",
		"missing_required_option": "missing required option: {option}",
	},
	"ja": {
		"label.help":      "このオプションのヘルプはありません。",
		"label.usage":     "使い方",
		"label.options":   "オプション",
		"label.arguments": "引数",
		"label.required":  "必須",
		"label.default":   "既定値",
		"label.base":      "基数",
		"label.show_help": "このヘルプを表示して終了します。",

		"no_name":         "オプション名が指定されていません",
		"invalid_name":    "不正なオプション名です: {name}",
		"duplicate_name":  "オプションは既に存在します: {name}",
		"unknown_type":    "オプション {option} の型が不明です: {type}",
		"missing_parse":   "カスタム型オプション {option} に parse 関数がありません",
		"metavar_count":   "オプション {option} の metavar の数が不正です: {metavar}",
		"min_max":         "オプション {option} で min > max です",
		"invalid_base":    "オプション {option} の基数が不正です: {base}",
		"empty_enum":      "列挙 {option} に値が定義されていません",
		"empty_record":    "レコード {option} には少なくとも 1 つの引数が必要です",
		"record_arg":      "オプション {option} の引数 {index} の引数の数が不正です",
		"argument_bounds": "minargs > maxargs です",
		"invalid_default": "オプション {option} の既定値が不正です: {value}",

		"unknown_option":          "不明なオプションです: {option}",
		"illegal_syntax":          "オプションの構文が不正です: {arg}",
		"missing_argument":        "オプション {option} には {argc} 個の引数が必要です",
		"too_many_arguments":      "オプション {option} には {argc} 個の引数が必要ですが、{arg} 内の別のオプションが既に使用しています",
		"unexpected_argument":     "オプション {option} は引数を取りません",
		"invalid_value":           "オプション {option} の値が不正です: {value}",
		"redefined_option":        "オプション {option} は再定義できません",
		"argument_count.min":      "引数の数が不正です: {count}、最小は {min} です",
		"argument_count.max":      "引数の数が不正です: {count}、最大は {max} です",
		"argument_count.range":    "引数の数が不正です: {count}、最小は {min}、最大は {max} です",
		"missing_required_option": "必須オプションがありません: {option}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		msg, ok = dictionaries["en"][code]
	}
	if !ok {
		return code
	}
	return Expand(msg, data)
}

// Expand substitutes {key} placeholders in msg with values from data.
// Unknown placeholders are left untouched.
func Expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language. The tag is matched
// against the supported languages ("en", "ja"), so "ja-JP" selects Japanese
// and anything unsupported falls back to English.
func SetLanguage(lang string) {
	currentTranslator = dictTranslator{lang: Match(lang)}
}

// Match returns the supported base language closest to the given tag.
func Match(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "en"
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
