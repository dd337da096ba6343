package pdftext

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"pdfquiz/internal/textquality"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// minSalvageChars is the acceptance floor for last-resort extraction. Lower
// than the primary threshold: at this point any readable text beats an
// outright failure.
const minSalvageChars = 20

var (
	pdfStringLiteral = regexp.MustCompile(`\(([^)]*)\)`)

	rawParenRun   = regexp.MustCompile(`\(([^)]{10,})\)`)
	rawBracketRun = regexp.MustCompile(`\[([^\]]{10,})\]`)
	rawStreamBody = regexp.MustCompile(`(?s)stream\s+(.*?)\s+endstream`)
)

// salvage is the last-resort path for documents the structured readers
// cannot handle. It first parses raw content streams via pdfcpu, then falls
// back to scanning the bytes for string-literal patterns.
func salvage(content []byte) (string, bool) {
	if text, ok := salvageContentStreams(content); ok {
		return text, true
	}
	return salvageRawBytes(content)
}

// salvageContentStreams decompresses page content streams and pulls string
// literals out of the text-showing operators.
func salvageContentStreams(content []byte) (string, bool) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(content), conf)
	if err != nil {
		return "", false
	}

	numPages := ctx.PageCount
	if numPages > maxPages {
		numPages = maxPages
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= numPages; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		if pageText := textFromStream(data); pageText != "" {
			sb.WriteString(pageText)
			sb.WriteByte(' ')
		}
	}

	cleaned := textquality.Clean(sb.String())
	if len(cleaned) >= minSalvageChars {
		return cleaned, true
	}
	return "", false
}

// textFromStream collects string literals from the Tj, TJ and ' operators
// of one content stream.
func textFromStream(data []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		showsText := bytes.HasSuffix(line, []byte("Tj")) ||
			bytes.HasSuffix(line, []byte("TJ")) ||
			(bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")))
		if !showsText {
			continue
		}

		for _, m := range pdfStringLiteral.FindAllSubmatch(line, -1) {
			if text := decodePDFString(m[1]); text != "" {
				sb.WriteString(text)
				sb.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// decodePDFString resolves backslash escapes, including octal byte values,
// in a PDF string literal.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// salvageRawBytes scans the file bytes directly for runs that look like
// text: parenthesised literals, bracketed arrays and stream bodies. Works
// even on structurally broken files no parser will open.
func salvageRawBytes(content []byte) (string, bool) {
	var sb strings.Builder
	collect := func(pattern *regexp.Regexp) {
		for _, m := range pattern.FindAllSubmatch(content, -1) {
			candidate := strings.TrimSpace(string(m[1]))
			if len(candidate) > 10 && strings.ContainsFunc(candidate, isASCIILetter) {
				sb.WriteString(candidate)
				sb.WriteByte(' ')
			}
		}
	}
	collect(rawParenRun)
	collect(rawBracketRun)
	collect(rawStreamBody)

	cleaned := textquality.Clean(sb.String())
	if len(cleaned) >= minSalvageChars {
		return cleaned, true
	}
	return "", false
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
