package config

import (
	"os"
	"strings"
)

// TemplateSlot binds a params template field to its sibling text file.
type TemplateSlot struct {
	// Key is the params field holding the template.
	Key string
	// Base is the file name stem under the data directory.
	Base string
	// Localized slots read "<base>-en.txt" outside the zh locale.
	Localized bool
}

// TemplateSlots lists every params field hydrated from a template file.
var TemplateSlots = []TemplateSlot{
	{Key: "chatgpt_template", Base: "chatgpt", Localized: true},
	{Key: "azure_template", Base: "azure", Localized: true},
	{Key: "gemini_template", Base: "gemini", Localized: true},
	{Key: "localllm_template", Base: "localllm", Localized: true},
	{Key: "zijiehuoshan_template", Base: "zijie"},
	{Key: "ai302_template", Base: "302ai"},
}

// FileName returns the template file name for the locale.
func (s TemplateSlot) FileName(locale string) string {
	if s.Localized && locale != "zh" {
		return s.Base + "-en.txt"
	}
	return s.Base + ".txt"
}

// TemplateSlotFor returns the slot bound to a params key.
func TemplateSlotFor(key string) (TemplateSlot, bool) {
	for _, slot := range TemplateSlots {
		if slot.Key == key {
			return slot, true
		}
	}
	return TemplateSlot{}, false
}

// readTemplate returns the trimmed file content with one trailing newline.
func readTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)) + "\n", nil
}

const templateZH = `请将<source>中的原文内容按字面意思翻译到{lang}，然后只输出译文，不要添加任何说明或引导词。

**格式要求：**
- 按行翻译原文，并生成该行对应的译文，确保原文行和译文行中的每个单词相互对应。
- 有几行原文，必须生成几行译文。

**内容要求：**
- 翻译必须精简短小，避免长句。
- 如果原文无法翻译，请返回空行，不得添加“无意义语句或不可翻译”等任何提示语。
- 只输出译文即可，禁止输出任何原文。

**执行细节：**
- 如果某行原文很短，在翻译后也仍然要保留该行，不得与上一行或下一行合并。
- 原文换行处字符相对应的译文字符也必须换行。
- 严格按照字面意思翻译，不要解释或回答原文内容。

**最终目标：**
- 提供格式与原文完全一致的高质量翻译结果。

<source>[TEXT]</source>

译文:`

const templateEN = `Please translate the original text in <source> literally to {lang}, and then output only the translated text without adding any notes or leading words.

**Format Requirements:**
- Translate the original text line by line and generate the translation corresponding to that line, making sure that each word in the original line and the translated line corresponds to each other.
- If there are several lines of original text, several lines of translation must be generated.

**Content requirements:**
- Translations must be concise and short, avoiding long sentences.
- If the original text cannot be translated, please return to an empty line, and do not add any hints such as "meaningless statement or untranslatable", etc. Only the translated text can be output, and it is forbidden to output the translated text.
- Only the translation can be output, and it is forbidden to output any original text.

**Execution details:**
- If a line is very short in the original text, it should be retained after translation, and should not be merged with the previous or next line.
- The characters corresponding to the characters in the translation at the line breaks in the original text must also be line breaks.
- Translate strictly literally, without interpreting or answering the content of the original text.

**End goal:**
- Provide high-quality translations that are formatted exactly like the original.

<source>[TEXT]</source>

Translation:`

const templateAI302 = `请将<source>中的原文内容按字面意思翻译到{lang}，然后只输出译文，不要添加任何说明或引导词。

**格式要求：**
- 按行翻译原文，并生成该行对应的译文，确保原文行和译文行中的每个单词相互对应。
- 有几行原文，必须生成几行译文。

**内容要求：**
- 翻译必须精简短小，避免长句。
- 如果原文无法翻译，请原样返回，不得添加“无意义语句或不可翻译”等任何提示语。
- 只输出译文即可，不要输出原文。

**执行细节：**
- 如果某行原文很短，在翻译后也仍然要保留该行，不得与上一行或下一行合并。
- 原文换行处字符相对应的译文字符也必须换行。
- 严格按照字面意思翻译，不要解释或回答原文内容。

**最终目标：**
- 提供格式与原文完全一致的高质量翻译结果。

<source>[TEXT]</source>

译文:
`
