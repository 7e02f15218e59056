// Package email turns uploaded .eml or plain-text files into a
// subject/body pair for the extraction engine.
package email

import (
	"bytes"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"
)

// NoSubject is the placeholder for emails without a usable subject.
const NoSubject = "(no subject)"

// Parsed is a cleaned email: subject plus plain-text body, carrying
// its original position in the upload batch.
type Parsed struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	Index   int    `json:"index"`
}

// Parse extracts subject and plain-text body from raw file content.
// MIME messages are parsed properly, preferring the text part and
// converting HTML when that is all there is. Content that does not
// parse as an email is treated as plain text: first line becomes the
// subject, the rest the body.
func Parse(content []byte, index int) Parsed {
	if len(bytes.TrimSpace(content)) == 0 {
		return Parsed{Subject: "(empty file)", Index: index}
	}

	env, err := enmime.ReadEnvelope(bytes.NewReader(content))
	if err != nil {
		return parsePlainText(content, index)
	}

	subject := strings.TrimSpace(env.GetHeader("Subject"))
	text := strings.TrimSpace(env.Text)
	if text == "" && env.HTML != "" {
		if converted, err := html2text.FromString(env.HTML, html2text.Options{TextOnly: true}); err == nil {
			text = strings.TrimSpace(converted)
		}
	}

	// Headerless plain text often still "parses"; fall back when
	// nothing useful came out.
	if subject == "" && text == "" {
		return parsePlainText(content, index)
	}
	if subject == "" {
		subject = NoSubject
	}

	return Parsed{Subject: subject, Text: text, Index: index}
}

// parsePlainText treats the first line as the subject and the rest as
// the body.
func parsePlainText(content []byte, index int) Parsed {
	lines := strings.SplitN(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n", 2)
	subject := strings.TrimSpace(lines[0])
	if subject == "" {
		subject = NoSubject
	}
	text := ""
	if len(lines) > 1 {
		text = strings.TrimSpace(lines[1])
	}
	return Parsed{Subject: subject, Text: text, Index: index}
}
