package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/kdipaolo/handover-flow/internal/transcript"
)

const (
	fontName = "Times New Roman"
	fontSize = 13

	titleText = "FLYNN CONSTRUCTION – HANDOVER ANALYSIS"
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// Section is one question/answer pair, in question order. A section with a
// non-nil Err renders a failure note instead of an answer.
type Section struct {
	Question string
	Answer   string
	Err      error
}

// Meta is the report header block.
type Meta struct {
	Project  string
	Model    string
	Date     time.Time
	Format   transcript.Format
	Speakers []transcript.Speaker
}

// OutputPath names the report after its transcript so runs on different
// projects never overwrite each other.
func OutputPath(dir, project string) string {
	return filepath.Join(dir, fmt.Sprintf("handover_analysis_%s.docx", project))
}

// Write renders the metadata block plus one heading+answer section per
// question into a docx file at outputPath.
func Write(meta Meta, sections []Section, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), titleText, true, 16)
	addPlainText(doc.AddParagraph(""), fmt.Sprintf("Project: %s", meta.Project))
	addPlainText(doc.AddParagraph(""), fmt.Sprintf("Model: %s", meta.Model))
	addPlainText(doc.AddParagraph(""), fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02 15:04")))
	addPlainText(doc.AddParagraph(""), fmt.Sprintf("Transcript Format: .%s", strings.ToUpper(string(meta.Format))))
	if line := speakerLine(meta.Speakers); line != "" {
		addPlainText(doc.AddParagraph(""), line)
	}
	doc.AddParagraph("")

	for i, s := range sections {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Q%d: %s", i+1, s.Question), true, 15)

		if s.Err != nil {
			addPlainText(doc.AddParagraph(""), fmt.Sprintf("ERROR: %v", s.Err))
			doc.AddParagraph("")
			continue
		}

		for _, block := range answerBlocks(s.Answer) {
			for _, line := range block {
				addRichText(doc.AddParagraph(""), line)
			}
			doc.AddParagraph("")
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}

// answerBlocks splits an answer on blank lines into paragraph groups and
// normalizes each line: markdown bullets become "•", rules are dropped.
func answerBlocks(answer string) [][]string {
	var blocks [][]string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(answer, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			flush()
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			trimmed = "• " + m[1]
		}
		cur = append(cur, trimmed)
	}
	flush()

	return blocks
}

func speakerLine(speakers []transcript.Speaker) string {
	if len(speakers) == 0 {
		return ""
	}

	parts := make([]string, 0, len(speakers))
	for _, s := range speakers {
		parts = append(parts, fmt.Sprintf("%s (%d)", s.Name, s.Turns))
	}
	return "Speaker turns: " + strings.Join(parts, ", ")
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addPlainText(p *docx.Paragraph, text string) {
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}

// addRichText renders a line with **bold** spans as bold runs and all other
// markdown markers stripped.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
