package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// maxHeaderLine is the recommended line length, "Subject: " included.
	maxHeaderLine = 78
	// maxLine is the hard RFC 5322 limit without the CRLF.
	maxLine = 998
	// maxWordBytes keeps "Subject: " plus one base64 encoded-word within maxHeaderLine.
	maxWordBytes = 42
)

// Message is a plain-text email ready to hand to a Sender.
type Message struct {
	ID      string
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
	Date    time.Time
}

var headerCleaner = strings.NewReplacer("\r", "", "\n", " ")

// clean drops line breaks so user input cannot add headers.
func clean(s string) string {
	return strings.TrimSpace(headerCleaner.Replace(s))
}

// Bytes renders the message in RFC 5322 form with CRLF line endings.
func (m *Message) Bytes() []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\r\n", k, v)
		}
	}

	to := make([]string, len(m.To))
	for i, addr := range m.To {
		to[i] = clean(addr)
	}

	header("From", clean(m.From))
	header("To", strings.Join(to, ", "))
	header("Reply-To", clean(m.ReplyTo))
	header("Subject", encodeSubject(clean(m.Subject)))
	header("Message-ID", m.ID)
	header("Date", m.Date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")

	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if !hasLongLine(body) {
		header("Content-Transfer-Encoding", "8bit")
		b.WriteString("\r\n")
		b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
		return b.Bytes()
	}

	header("Content-Transfer-Encoding", "quoted-printable")
	b.WriteString("\r\n")
	qp := quotedprintable.NewWriter(&b)
	qp.Write([]byte(body))
	qp.Close()
	return b.Bytes()
}

func hasLongLine(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		if len(line) > maxLine {
			return true
		}
	}
	return false
}

// encodeSubject returns s as is or Q-encoded when it fits on one header line,
// otherwise as folded base64 encoded-words.
func encodeSubject(s string) string {
	if q := mime.QEncoding.Encode("utf-8", s); len("Subject: ")+len(q) <= maxHeaderLine {
		return q
	}

	var words []string
	for len(s) > 0 {
		n := 0
		for n < len(s) {
			_, size := utf8.DecodeRuneInString(s[n:])
			if n+size > maxWordBytes {
				break
			}
			n += size
		}
		words = append(words, "=?utf-8?b?"+base64.StdEncoding.EncodeToString([]byte(s[:n]))+"?=")
		s = s[n:]
	}
	return strings.Join(words, "\r\n ")
}

func messageID(ref, kind, from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = clean(from[at+1:])
	}
	return fmt.Sprintf("<%s.%s@%s>", ref, kind, domain)
}
