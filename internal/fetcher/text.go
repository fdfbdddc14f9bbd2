package fetcher

import (
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sj-alumni/directory-cli/internal/textnorm"
)

// structuredFieldOrder fixes the column order of records parsed from
// labeled text blocks.
var structuredFieldOrder = []string{
	"name", "nickname", "email", "phone", "address",
	"profession", "company", "batch", "chapter",
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// readTextFile handles legacy text dumps. Blocks separated by blank lines
// are parsed as "LABEL: value" records; any email address not already
// attached to a record is collected as a standalone email, which covers
// plain email-list files too.
func readTextFile(path string, meta SourceMeta) (*FileData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "text: read %s", path)
	}
	text := string(raw)

	data := &FileData{Meta: meta}
	recordEmails := map[string]bool{}

	for _, block := range blankLineRe.Split(text, -1) {
		fields := textnorm.ParseStructuredText(block)
		if len(fields) == 0 {
			continue
		}
		record := RawRecord{}
		for _, name := range structuredFieldOrder {
			if value, ok := fields[name]; ok {
				record.Columns = append(record.Columns, Column{Name: name, Value: value})
			}
		}
		if email, ok := fields["email"]; ok {
			for _, e := range textnorm.ExtractEmails(email) {
				recordEmails[strings.ToLower(e)] = true
			}
		}
		data.Records = append(data.Records, record)
	}

	for _, email := range textnorm.ExtractEmails(text) {
		if !recordEmails[strings.ToLower(email)] {
			data.Emails = append(data.Emails, email)
		}
	}
	return data, nil
}
