package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// Word extracts raw text from an Office Open XML (.docx) document.
// Legacy binary .doc files are not zip archives and fail to open.
type Word struct{}

func (Word) ExtractText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open word document: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer rc.Close()

		xmlContent, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", documentPart, err)
		}
		return documentText(xmlContent)
	}
	return "", fmt.Errorf("word document has no %s", documentPart)
}

type docxDocument struct {
	Body docxNode `xml:"body"`
}

// docxNode is any WordprocessingML element with its children in document
// order. Text only matters on w:t.
type docxNode struct {
	XMLName xml.Name
	Text    string     `xml:",chardata"`
	Nodes   []docxNode `xml:",any"`
}

func documentText(xmlContent []byte) (string, error) {
	var doc docxDocument
	if err := xml.Unmarshal(xmlContent, &doc); err != nil {
		return "", fmt.Errorf("parse %s: %w", documentPart, err)
	}

	var text strings.Builder
	writeBlocks(&text, doc.Body)
	return text.String(), nil
}

// writeBlocks renders paragraphs and tables, descending into the content
// controls and revision marks that can wrap them.
func writeBlocks(text *strings.Builder, parent docxNode) {
	for _, node := range parent.Nodes {
		switch node.XMLName.Local {
		case "p":
			writeInline(text, node)
			text.WriteString("\n\n")
		case "tbl":
			writeTable(text, node)
			text.WriteString("\n")
		case "sdt", "sdtContent", "customXml", "ins":
			writeBlocks(text, node)
		}
	}
}

func writeTable(text *strings.Builder, tbl docxNode) {
	for _, row := range tbl.Nodes {
		if row.XMLName.Local != "tr" {
			continue
		}
		var cells []string
		for _, cell := range row.Nodes {
			if cell.XMLName.Local != "tc" {
				continue
			}
			var parts []string
			for _, p := range cell.Nodes {
				if p.XMLName.Local == "p" {
					parts = append(parts, paragraphText(p))
				}
			}
			cells = append(cells, strings.TrimSpace(strings.Join(parts, " ")))
		}
		text.WriteString(strings.Join(cells, "\t"))
		text.WriteString("\n")
	}
}

func paragraphText(p docxNode) string {
	var text strings.Builder
	writeInline(&text, p)
	return text.String()
}

// writeInline walks a paragraph's runs in order, including runs nested in
// hyperlinks, smart tags, fields and insertions.
func writeInline(text *strings.Builder, parent docxNode) {
	for _, node := range parent.Nodes {
		switch node.XMLName.Local {
		case "t":
			text.WriteString(node.Text)
		case "tab":
			text.WriteString("\t")
		case "br", "cr":
			text.WriteString("\n")
		case "pPr", "rPr", "del", "instrText", "fldChar":
			// properties (pPr holds tab stops), deleted text, field codes
		default:
			writeInline(text, node)
		}
	}
}
