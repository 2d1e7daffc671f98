// internal/extract/scriptdata.go
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
)

// bodyStateKeys are the object fields, in preference order, that hold
// article text in known inline-state shapes.
var bodyStateKeys = []string{"body", "content", "articleBody", "text"}

// bodyFromScript evaluates the inline script that assigns the configured
// global (e.g. window.__APP_DATA__ = {...}) and reads the article text out
// of the resulting object. The assignment is an object literal with
// unquoted keys on several Korean news frontends, so it is evaluated as JS
// rather than parsed as JSON.
func (e *Extractor) bodyFromScript(doc *goquery.Document) string {
	assignRE := regexp.MustCompile(
		`(?s)` + regexp.QuoteMeta(e.cfg.ScriptVar) + `\s*=\s*(\{.*?\})\s*(?:;|</)`)

	var literal string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, e.cfg.ScriptVar) {
			return true
		}
		// Re-append a terminator so the lazy match can anchor
		if m := assignRE.FindStringSubmatch(text + ";"); m != nil {
			literal = m[1]
			return false
		}
		return true
	})
	if literal == "" {
		return ""
	}

	vm := goja.New()
	value, err := vm.RunString("(" + literal + ")")
	if err != nil {
		e.log.Debug().Err(err).Str("var", e.cfg.ScriptVar).Msg("Inline state evaluation failed")
		return ""
	}

	obj, ok := value.Export().(map[string]interface{})
	if !ok {
		return ""
	}

	return stateText(obj)
}

// stateText walks the exported object for the first known body key,
// descending one level into nested objects (common "article" wrapper).
func stateText(obj map[string]interface{}) string {
	for _, key := range bodyStateKeys {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return stripTags(s)
			}
		}
	}
	for _, v := range obj {
		if nested, ok := v.(map[string]interface{}); ok {
			if s := stateText(nested); s != "" {
				return s
			}
		}
	}
	return ""
}

var tagRE = regexp.MustCompile(`<[^>]+>`)

// stripTags drops markup embedded in state strings; the normalizer handles
// entities and whitespace afterwards.
func stripTags(s string) string {
	return tagRE.ReplaceAllString(s, " ")
}
