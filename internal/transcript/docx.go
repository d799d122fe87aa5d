package transcript

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// extractDocx pulls paragraph text out of word/document.xml inside the
// OOXML container. Paragraphs keep document order and are joined by blank
// lines, matching the plain-text transcript shape.
func extractDocx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var docPart *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docPart = f
			break
		}
	}
	if docPart == nil {
		return "", errors.New("word/document.xml not found: not a docx file")
	}

	rc, err := docPart.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	paras, err := paragraphTexts(rc)
	if err != nil {
		return "", err
	}

	return strings.Join(paras, "\n\n"), nil
}

// paragraphTexts streams WordprocessingML and collects the text runs of
// each non-empty w:p element.
func paragraphTexts(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paras []string
	var cur strings.Builder
	inPara := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				if inPara {
					var s string
					if err := dec.DecodeElement(&s, &t); err != nil {
						return nil, fmt.Errorf("parse document.xml: %w", err)
					}
					cur.WriteString(s)
				}
			case "tab":
				if inPara {
					cur.WriteString("\t")
				}
			case "br":
				if inPara {
					cur.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inPara {
				if text := strings.TrimSpace(cur.String()); text != "" {
					paras = append(paras, text)
				}
				inPara = false
			}
		}
	}

	return paras, nil
}
