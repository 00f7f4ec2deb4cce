package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName   = "Times New Roman"
	fontSize   = 13
	titleSize  = 16
	fontColor  = "000000"
	indentUnit = "    "
)

type blockKind int

const (
	blockText blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
	blockQuote
	blockSpeaker
)

// block is one rendered paragraph of a summary.
type block struct {
	kind   blockKind
	level  int    // heading level or list nesting depth
	marker string // list number ("3.") or speaker label
	text   string
}

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet   = regexp.MustCompile(`^(\s*)[\-\*+]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^(\s*)(\d+[.)])\s+(.+)$`)
	reQuote    = regexp.MustCompile(`^>\s?(.*)$`)
	reSpeaker  = regexp.MustCompile(`^(?:\*\*)?\[?(SPEAKER_\d+|Speaker \d+)\]?(?:\*\*)?:\s*(.*)$`)
	reStrong   = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
)

// parseSummary splits markdown into paragraphs. Blank lines and rules are
// dropped.
func parseSummary(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" || trimmed == "***" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case reSpeaker.MatchString(trimmed):
			m := reSpeaker.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockSpeaker, marker: m[1], text: m[2]})
		case reNumbered.MatchString(line):
			m := reNumbered.FindStringSubmatch(line)
			blocks = append(blocks, block{kind: blockNumbered, level: depth(m[1]), marker: m[2], text: m[3]})
		case reBullet.MatchString(line):
			m := reBullet.FindStringSubmatch(line)
			blocks = append(blocks, block{kind: blockBullet, level: depth(m[1]), text: m[2]})
		case reQuote.MatchString(trimmed):
			blocks = append(blocks, block{kind: blockQuote, text: reQuote.FindStringSubmatch(trimmed)[1]})
		default:
			blocks = append(blocks, block{kind: blockText, text: trimmed})
		}
	}
	return blocks
}

// depth counts list nesting from leading whitespace (two spaces or a tab).
func depth(indent string) int {
	indent = strings.ReplaceAll(indent, "\t", "  ")
	return len(indent) / 2
}

// markdownToDocx writes the summary as a styled docx file.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), cleanInline(title), true, false, titleSize)

	for _, b := range parseSummary(markdown) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			addRun(p, cleanInline(b.text), true, false, headingSize(b.level))
		case blockBullet:
			addRun(p, strings.Repeat(indentUnit, b.level)+"• ", false, false, fontSize)
			addInline(p, b.text, false)
		case blockNumbered:
			addRun(p, strings.Repeat(indentUnit, b.level)+b.marker+" ", false, false, fontSize)
			addInline(p, b.text, false)
		case blockQuote:
			addInline(p, b.text, true)
		case blockSpeaker:
			addRun(p, b.marker+": ", true, false, fontSize)
			addInline(p, b.text, false)
		default:
			addInline(p, b.text, false)
		}
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	if level >= 4 {
		return fontSize
	}
	return uint64(titleSize + 1 - level)
}

type span struct {
	text string
	bold bool
}

// inlineSpans splits text on **strong** and __strong__ markers.
func inlineSpans(text string) []span {
	var spans []span
	last := 0
	for _, loc := range reStrong.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, span{text: cleanInline(text[last:loc[0]])})
		}
		var inner string
		if loc[2] >= 0 {
			inner = text[loc[2]:loc[3]]
		} else {
			inner = text[loc[4]:loc[5]]
		}
		spans = append(spans, span{text: cleanInline(inner), bold: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, span{text: cleanInline(text[last:])})
	}
	return spans
}

func addInline(p *docx.Paragraph, text string, italic bool) {
	for _, s := range inlineSpans(text) {
		if s.text != "" {
			addRun(p, s.text, s.bold, italic, fontSize)
		}
	}
}

func addRun(p *docx.Paragraph, text string, bold, italic bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color(fontColor)
	if bold {
		run.Bold(true)
	}
	if italic {
		run.Italic(true)
	}
}

func cleanInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
